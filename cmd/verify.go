package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"kolikctl/internal/prompt"
)

var verifyEmail string

// verifyCmd resumes a login that was waiting on a one-time code, for
// example after the login command was interrupted.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Complete a sign-in with a one-time code",
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyEmail, "email", "", "account email (prompted when omitted)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	email := verifyEmail
	if email == "" {
		email, err = prompt.Line(reader, "Email", os.Stderr)
		if err != nil {
			return err
		}
	}

	code, err := prompt.Line(reader, "One-time code", os.Stderr)
	if err != nil {
		return err
	}

	if err := a.store.VerifyCode(ctx, email, code); err != nil {
		a.printer.Error("Verification failed: %v", err)
		return err
	}

	a.printer.Success("Signed in as %s", a.store.State().User.Email)
	return nil
}
