package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"kolikctl/internal/domain"
	"kolikctl/internal/prompt"
)

var loginEmail string

// loginCmd signs the user in, following the MFA branches the backend
// may request.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Kolik account",
	Long: `Sign in against the Kolik backend.

Depending on the account, the backend may require enrolling an
authenticator app first, or ask for a one-time code. In the latter case
the code is prompted for right away.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	email := loginEmail
	if email == "" {
		email, err = prompt.Line(reader, "Email", os.Stderr)
		if err != nil {
			return err
		}
	}

	password, err := prompt.Password("Password", os.Stderr)
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, email, password); err != nil {
		a.printer.Error("Login failed: %v", err)
		return err
	}

	switch st := a.store.State(); st.Phase {
	case domain.PhaseMFASetupPending:
		a.printer.Warning("Your account requires an authenticator app before you can sign in.")
		a.printer.Info("Enroll one in the Kolik web app, then run %s again.", a.printer.Bold("kolikctl login"))

	case domain.PhaseMFAVerifyPending:
		code, err := prompt.Line(reader, "One-time code", os.Stderr)
		if err != nil {
			return err
		}
		if err := a.store.VerifyCode(ctx, st.Email, code); err != nil {
			a.printer.Error("Verification failed: %v", err)
			a.printer.Info("Run %s to retry with a fresh code.", a.printer.Bold("kolikctl verify --email "+st.Email))
			return err
		}
		a.printer.Success("Signed in as %s", a.store.State().User.Email)

	case domain.PhaseAuthenticated:
		a.printer.Success("Signed in as %s", st.User.Email)
	}

	return nil
}
