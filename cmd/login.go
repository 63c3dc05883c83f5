// ABOUTME: Login command: authenticate against the gateway and store the session
// ABOUTME: Falls back to an interactive huh form when flags are absent

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/session"
	"github.com/sagmcom/eamctl/internal/validate"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	loginNoStore  bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the EAM gateway",
	Long:  `Authenticate with email and password, then store the session token for later commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword, loginNoStore, loginEmail == "" || loginPassword == "")
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginNoStore, "no-store", false, "Do not persist the session token")
	rootCmd.AddCommand(loginCmd)
}

// promptCredentials collects missing credentials interactively.
func promptCredentials(email, password *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Value(email).
			Validate(validate.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(func(s string) error { return validate.Required("password", s) }),
	))
	return form.Run()
}

// runLogin executes the sign-in flow and returns the exit code.
func runLogin(ctx context.Context, w io.Writer, email, password string, noStore, interactive bool) int {
	if interactive {
		if err := promptCredentials(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitTransport
		}
	}
	if err := validate.Email(email); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	if err := validate.Required("password", password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}

	// With --no-store the credential lives in an in-memory store for the
	// duration of this command; the token never touches disk.
	sess := session.Default()
	if noStore {
		sess = session.NewProvider(&session.MemStore{})
	}
	c, err := newClientWith(sess)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	token, err := c.Auth.Login(ctx, email, password)
	if err != nil {
		return reportError(w, err)
	}

	// The role comes from the profile, not the login response; store the
	// token first so the profile request carries it.
	cred := session.Credential{Token: token}
	if err := c.Auth.SaveSession(cred); err != nil {
		fmt.Fprintf(w, "Error: storing session: %v\n", err)
		return exitTransport
	}

	profile, err := c.Auth.Profile(ctx)
	if err != nil {
		return reportError(w, err)
	}
	cred.Role = profile.Role
	if err := c.Auth.SaveSession(cred); err != nil {
		fmt.Fprintf(w, "Error: storing session: %v\n", err)
		return exitTransport
	}

	if IsJSONOutput() {
		out := map[string]any{
			"email":   profile.Email,
			"role":    profile.Role,
			"landing": guard.LandingRoute(profile.Role),
			"stored":  !noStore,
		}
		if noStore {
			out["token"] = token
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", profile.Email, profile.Role)
		fmt.Fprintf(w, "Landing view: %s\n", guard.LandingRoute(profile.Role))
		if noStore {
			fmt.Fprintf(w, "Session not stored; export EAM_TOKEN=%s to reuse it.\n", token)
		}
	}
	return exitOK
}
