package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

var (
	loginUsername string
	loginPassword string
	loginMethod   string
)

func init() {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE:  runLogin,
	}
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (read from stdin when omitted)")
	loginCmd.Flags().StringVar(&loginMethod, "method", string(domain.AuthLDAP), "auth method: ldap or development")
	rootCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE:  runLogout,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE:  runWhoami,
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if loginUsername == "" {
		return errors.New("--username is required")
	}
	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := a.auth.Login(ctx, domain.Credentials{
		Username:   loginUsername,
		Password:   password,
		AuthMethod: domain.AuthMethod(loginMethod),
	})
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.JSON(user)
	}
	a.out.line("Signed in as %s (%s)", user.Name(), user.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.auth.Logout(); err != nil {
		return err
	}
	a.out.line("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.JSON(user)
	}
	a.out.line("%s <%s>", user.Name(), user.Email)
	a.out.line("username:   %s", user.Username)
	if user.Department != "" {
		a.out.line("department: %s", user.Department)
	}
	if len(user.Groups) > 0 {
		a.out.line("groups:     %s", strings.Join(user.Groups, ", "))
	}
	return nil
}
