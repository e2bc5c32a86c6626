package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hochfrequenz/automation-portal/internal/sessionstore"
	"github.com/hochfrequenz/automation-portal/tui"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal dashboard",
		RunE:  runTUI,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		theme, _, err := a.store.Get(sessionstore.KeyTheme)
		if err != nil {
			return err
		}
		model := tui.NewModel(tui.ModelConfig{
			Source:  tui.ClientSource{Client: a.client},
			Timeout: a.cfg.RequestTimeout(),
			Refresh: a.cfg.PollInterval(),
			Theme:   theme,
		})
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	})
}
