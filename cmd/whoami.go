package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"kolikctl/internal/output"
	"kolikctl/internal/session"
)

// whoamiCmd shows the signed-in account, if any.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	a.store.Rehydrate(cmd.Context())

	st := a.store.State()
	if !session.CanEnter(st) {
		a.printer.Info("Not signed in.")
		return nil
	}

	table := output.NewTable([]string{"id", "email", "name"})
	table.AddRow([]string{strconv.FormatInt(st.User.ID, 10), st.User.Email, st.User.Name})
	table.Render()
	return nil
}
