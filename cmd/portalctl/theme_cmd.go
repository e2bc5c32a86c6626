package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/sessionstore"
)

var themes = []string{"light", "dark", "system"}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: themes,
		RunE:      runTheme,
	})
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		theme, ok, err := a.store.Get(sessionstore.KeyTheme)
		if err != nil {
			return err
		}
		if !ok {
			theme = "system"
		}
		fmt.Fprintln(a.out.w, theme)
		return nil
	}

	if err := cobra.OnlyValidArgs(cmd, args); err != nil {
		return err
	}
	if err := a.store.Set(sessionstore.KeyTheme, args[0]); err != nil {
		return err
	}
	a.out.line("Theme set to %s", args[0])
	return nil
}
