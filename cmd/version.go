package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the CLI version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kolikctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kolikctl", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
