// ABOUTME: Activity log and notification commands
// ABOUTME: Read-only feeds plus the mark-read acknowledgement

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/view"
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the gateway activity log (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runActivity(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show your notifications",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runNotifications(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runNotificationsRead(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsReadCmd)
	rootCmd.AddCommand(activityCmd, notificationsCmd)
}

// runActivity prints the activity log, newest first.
func runActivity(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "activity", guard.RoleAdmin); code != exitOK {
		return code
	}

	entries, err := c.Activity.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, entries)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tWHO\tACTION\tENTITY\tDETAILS")
	for _, e := range entries {
		entity := "-"
		if e.EntityType != "" {
			entity = fmt.Sprintf("%s %d", e.EntityType, e.EntityID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			view.FormatDate(e.Timestamp), e.UserName, e.Action, entity, e.Details)
	}
	tw.Flush()
	return exitOK
}

// runNotifications prints the signed-in user's feed.
func runNotifications(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "notifications"); code != exitOK {
		return code
	}

	items, err := c.Notifications.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, items)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREAD\tTITLE\tMESSAGE\tWHEN")
	for _, n := range items {
		read := " "
		if n.Read {
			read = "x"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n.ID, read, n.Title, n.Message, view.FormatDate(n.CreatedAt))
	}
	tw.Flush()
	return exitOK
}

// runNotificationsRead acknowledges one notification.
func runNotificationsRead(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "notifications read"); code != exitOK {
		return code
	}

	if err := c.Notifications.MarkRead(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Notification %d marked read.\n", id)
	return exitOK
}
