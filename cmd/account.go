// ABOUTME: Account lifecycle commands: logout, register, profile
// ABOUTME: Plus email verification and password reset flows

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/validate"
	"github.com/sagmcom/eamctl/internal/view"
	"github.com/spf13/cobra"
)

var (
	registerName       string
	registerEmail      string
	registerPassword   string
	registerConfirm    string
	registerPhone      string
	registerCIN        string
	registerDepartment string
	resetToken         string
	resetPassword      string
	verifyToken        string
	resendEmail        string
	forgotEmail        string
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Register a new account. The account stays pending until the emailed verification link is confirmed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email",
	Short: "Confirm an email verification token, or resend the email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVerifyEmail(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runForgotPassword(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Complete a password reset with the emailed token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runResetPassword(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Password confirmation")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerCIN, "cin", "", "National ID number")
	registerCmd.Flags().StringVar(&registerDepartment, "department", "", "Department (PRODUCTION, MAINTENANCE, QUALITÉ, LOGISTIQUE, IT)")
	verifyEmailCmd.Flags().StringVar(&verifyToken, "token", "", "Verification token from the email")
	verifyEmailCmd.Flags().StringVar(&resendEmail, "resend", "", "Resend the verification email to this address instead")
	verifyEmailCmd.MarkFlagsOneRequired("token", "resend")
	verifyEmailCmd.MarkFlagsMutuallyExclusive("token", "resend")
	forgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "Account email")
	forgotPasswordCmd.MarkFlagRequired("email")
	resetPasswordCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "new-password", "", "New password")
	resetPasswordCmd.MarkFlagRequired("token")
	resetPasswordCmd.MarkFlagRequired("new-password")

	rootCmd.AddCommand(logoutCmd, registerCmd, profileCmd, verifyEmailCmd, forgotPasswordCmd, resetPasswordCmd)
}

// runLogout signs out and returns the exit code.
func runLogout(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if err := c.Auth.Logout(ctx); err != nil {
		// The local credential is already gone; the server-side failure is
		// informational.
		fmt.Fprintf(w, "Signed out locally; gateway unreachable: %v\n", err)
		return exitOK
	}
	fmt.Fprintln(w, "Signed out.")
	return exitOK
}

// runRegister validates and submits a new-account request.
func runRegister(ctx context.Context, w io.Writer) int {
	if err := validate.Email(registerEmail); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	confirm := registerConfirm
	if confirm == "" {
		confirm = registerPassword
	}
	if err := validate.PasswordConfirm(registerPassword, confirm); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	resp, err := c.Auth.Register(ctx, client.RegisterInput{
		Name:       registerName,
		Email:      registerEmail,
		Password:   registerPassword,
		Phone:      registerPhone,
		CIN:        registerCIN,
		Department: registerDepartment,
	})
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Account created for %s.\n", resp.User.Email)
		if resp.Message != "" {
			fmt.Fprintln(w, resp.Message)
		} else {
			fmt.Fprintln(w, "Check your inbox for the verification email.")
		}
	}
	return exitOK
}

// runProfile prints the signed-in account.
func runProfile(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "profile"); code != exitOK {
		return code
	}

	user, err := c.Auth.Profile(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}
	account := view.MapAccount(*user)
	fmt.Fprintf(w, `Name:       %s
Email:      %s
Role:       %s
Department: %s
Status:     %s
`, account.Name, account.Email, account.RoleLabel, account.Department, account.StatusLabel)
	return exitOK
}

// runVerifyEmail confirms a verification token, or resends the email.
func runVerifyEmail(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	if resendEmail != "" {
		if err := validate.Email(resendEmail); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitDomain
		}
		msg, err := c.Auth.ResendVerification(ctx, resendEmail)
		if err != nil {
			return reportError(w, err)
		}
		if msg == "" {
			msg = "Verification email sent."
		}
		fmt.Fprintln(w, msg)
		return exitOK
	}

	msg, err := c.Auth.VerifyEmail(ctx, verifyToken)
	if err != nil {
		return reportError(w, err)
	}
	if msg == "" {
		msg = "Email verified."
	}
	fmt.Fprintln(w, msg)
	return exitOK
}

// runForgotPassword requests a reset email. The gateway's anti-enumeration
// policy means unknown addresses get the same message as known ones.
func runForgotPassword(ctx context.Context, w io.Writer) int {
	if err := validate.Email(forgotEmail); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	msg, err := c.Auth.ForgotPassword(ctx, forgotEmail)
	if err != nil {
		return reportError(w, err)
	}
	fmt.Fprintln(w, msg)
	return exitOK
}

// runResetPassword completes a reset with the emailed token.
func runResetPassword(ctx context.Context, w io.Writer) int {
	if err := validate.Password(resetPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	msg, err := c.Auth.ResetPasswordConfirm(ctx, resetToken, resetPassword)
	if err != nil {
		return reportError(w, err)
	}
	if msg == "" {
		msg = "Password updated. Sign in with the new password."
	}
	fmt.Fprintln(w, msg)
	return exitOK
}
