// ABOUTME: User management commands, admin only
// ABOUTME: List, get, add, update, delete accounts

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/validate"
	"github.com/sagmcom/eamctl/internal/view"
	"github.com/spf13/cobra"
)

var (
	userName       string
	userEmail      string
	userPassword   string
	userPhone      string
	userCIN        string
	userRole       string
	userDepartment string
	userStatus     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsersDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{usersAddCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "Full name")
		c.Flags().StringVar(&userEmail, "email", "", "Email address")
		c.Flags().StringVar(&userPassword, "password", "", "Password")
		c.Flags().StringVar(&userPhone, "phone", "", "Phone number")
		c.Flags().StringVar(&userCIN, "cin", "", "National ID number")
		c.Flags().StringVar(&userRole, "role", "", "Role (ADMIN, CHEFOP, CHEFTECH, TECHNICIEN)")
		c.Flags().StringVar(&userDepartment, "department", "", "Department")
		c.Flags().StringVar(&userStatus, "status", "", "Account status (ACTIVE, INACTIVE, PENDING, SUSPENDED, ARCHIVED)")
	}
	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersAddCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

// runUsersList lists accounts.
func runUsersList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "users list", guard.RoleAdmin); code != exitOK {
		return code
	}

	users, err := c.Users.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, users)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tDEPARTMENT\tSTATUS")
	for _, a := range view.MapAccounts(users) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Email, a.Role, a.Department, a.Status)
	}
	tw.Flush()
	return exitOK
}

// runUsersGet shows one account.
func runUsersGet(ctx context.Context, w io.Writer, arg string) int {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "users get", guard.RoleAdmin); code != exitOK {
		return code
	}

	u, err := c.Users.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, u)
		return exitOK
	}
	a := view.MapAccount(*u)
	fmt.Fprintf(w, `Name:       %s
Email:      %s
Phone:      %s
Role:       %s
Department: %s
Status:     %s
`, a.Name, a.Email, u.Phone, a.RoleLabel, a.Department, a.StatusLabel)
	return exitOK
}

// runUsersAdd creates an account directly, bypassing email verification.
func runUsersAdd(ctx context.Context, w io.Writer) int {
	if err := validate.Email(userEmail); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	if err := validate.Password(userPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "users add", guard.RoleAdmin); code != exitOK {
		return code
	}

	created, err := c.Users.Create(ctx, client.User{
		Name:       userName,
		Email:      userEmail,
		Password:   userPassword,
		Phone:      userPhone,
		CIN:        userCIN,
		Role:       userRole,
		Department: userDepartment,
		Status:     userStatus,
	})
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Account %d created for %s.\n", created.ID, created.Email)
	}
	return exitOK
}

// runUsersUpdate patches an account with the flags the caller set.
func runUsersUpdate(ctx context.Context, w io.Writer, arg string) int {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "users update", guard.RoleAdmin); code != exitOK {
		return code
	}

	u, err := c.Users.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if userName != "" {
		u.Name = userName
	}
	if userEmail != "" {
		if err := validate.Email(userEmail); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitDomain
		}
		u.Email = userEmail
	}
	if userPassword != "" {
		if err := validate.Password(userPassword); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitDomain
		}
		u.Password = userPassword
	}
	if userPhone != "" {
		u.Phone = userPhone
	}
	if userCIN != "" {
		u.CIN = userCIN
	}
	if userRole != "" {
		u.Role = userRole
	}
	if userDepartment != "" {
		u.Department = userDepartment
	}
	if userStatus != "" {
		u.Status = userStatus
	}

	updated, err := c.Users.Update(ctx, *u)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Account %d updated.\n", updated.ID)
	}
	return exitOK
}

// runUsersDelete removes an account.
func runUsersDelete(ctx context.Context, w io.Writer, arg string) int {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "users delete", guard.RoleAdmin); code != exitOK {
		return code
	}

	if err := c.Users.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Account %d deleted.\n", id)
	return exitOK
}
