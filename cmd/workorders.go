// ABOUTME: Work order commands: CRUD plus assign and status transitions
// ABOUTME: Creation is for admins and chef opérateurs; status moves are open

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
	orderTitle       string
	orderDescription string
	orderPriority    string
	orderStatus      string
	orderAssignee    int64
)

var workOrdersCmd = &cobra.Command{
	Use:     "work-orders",
	Aliases: []string{"wo"},
	Short:   "Manage work orders",
}

var workOrdersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all work orders",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one work order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a work order",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a work order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersAssignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Assign a work order to a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersAssign(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Transition a work order's status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersStatus(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var workOrdersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a work order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWorkOrdersDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{workOrdersAddCmd, workOrdersUpdateCmd} {
		c.Flags().StringVar(&orderTitle, "title", "", "Work order title")
		c.Flags().StringVar(&orderDescription, "description", "", "Work order description")
		c.Flags().StringVar(&orderPriority, "priority", "", "Priority (BASSE, MOYENNE, ELEVEE, URGENTE)")
	}
	workOrdersAssignCmd.Flags().Int64Var(&orderAssignee, "technician", 0, "Technician user id")
	workOrdersAssignCmd.MarkFlagRequired("technician")
	workOrdersStatusCmd.Flags().StringVar(&orderStatus, "to", "", "Target status (EN_ATTENTE, EN_COURS, TERMINE, ANNULE)")
	workOrdersStatusCmd.MarkFlagRequired("to")
	workOrdersCmd.AddCommand(workOrdersListCmd, workOrdersGetCmd, workOrdersAddCmd,
		workOrdersUpdateCmd, workOrdersAssignCmd, workOrdersStatusCmd, workOrdersDeleteCmd)
	rootCmd.AddCommand(workOrdersCmd)
}

// runWorkOrdersList lists work orders.
func runWorkOrdersList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "work-orders list"); code != exitOK {
		return code
	}

	orders, err := c.WorkOrders.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, orders)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tCREATED\tASSIGNEE")
	for _, o := range view.MapOrders(orders) {
		assignee := "-"
		if o.AssignedTo != 0 {
			assignee = fmt.Sprint(o.AssignedTo)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Title, o.Priority, o.Status, o.Created, assignee)
	}
	tw.Flush()
	return exitOK
}

// runWorkOrdersGet shows one work order.
func runWorkOrdersGet(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "work-orders get"); code != exitOK {
		return code
	}

	o, err := c.WorkOrders.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, o)
		return exitOK
	}
	v := view.MapOrder(*o)
	fmt.Fprintf(w, `Title:       %s
Description: %s
Priority:    %s
Status:      %s
Created:     %s
`, v.Title, v.Description, v.PriorityLabel, v.StatusLabel, v.Created)
	return exitOK
}

// runWorkOrdersAdd creates a work order.
func runWorkOrdersAdd(ctx context.Context, w io.Writer) int {
	if err := validate.Required("title", orderTitle); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "work-orders add", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	created, err := c.WorkOrders.Create(ctx, client.WorkOrder{
		Titre:       orderTitle,
		Description: orderDescription,
		Priorite:    orderPriority,
	})
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Work order %d created.\n", created.ID)
	}
	return exitOK
}

// runWorkOrdersUpdate fetches, patches, and replaces a work order. Only
// flags the caller set are applied.
func runWorkOrdersUpdate(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "work-orders update", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	order, err := c.WorkOrders.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if orderTitle != "" {
		order.Titre = orderTitle
	}
	if orderDescription != "" {
		order.Description = orderDescription
	}
	if orderPriority != "" {
		order.Priorite = orderPriority
	}

	updated, err := c.WorkOrders.Update(ctx, *order)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Work order %d updated.\n", updated.ID)
	}
	return exitOK
}

// runWorkOrdersAssign routes a work order to a technician.
func runWorkOrdersAssign(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "work-orders assign", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	updated, err := c.WorkOrders.Assign(ctx, id, orderAssignee)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Work order %d assigned to technician %d.\n", updated.ID, orderAssignee)
	}
	return exitOK
}

// runWorkOrdersStatus moves a work order to a new status. The gateway owns
// the transition rules, so illegal moves come back as domain errors.
func runWorkOrdersStatus(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "work-orders status"); code != exitOK {
		return code
	}

	updated, err := c.WorkOrders.UpdateStatus(ctx, id, orderStatus)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Work order %d is now %s.\n", updated.ID, view.Status(updated.Statut).Label())
	}
	return exitOK
}

// runWorkOrdersDelete removes a work order.
func runWorkOrdersDelete(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "work-orders delete", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	if err := c.WorkOrders.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Work order %d deleted.\n", id)
	return exitOK
}
