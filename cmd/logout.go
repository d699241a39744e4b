package cmd

import (
	"github.com/spf13/cobra"
)

// logoutCmd signs the user out. The local session is cleared even when
// the server call fails.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of your Kolik account",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a.store.Rehydrate(ctx)
	a.store.Logout(ctx)
	a.cookies.Clear()

	a.showFlash()
	return nil
}
