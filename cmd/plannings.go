// ABOUTME: Planning commands: maintenance schedule CRUD
// ABOUTME: Date windows are given as yyyy-mm-dd and sent as midnight UTC

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/view"
	"github.com/spf13/cobra"
)

var (
	planStart      string
	planEnd        string
	planType       string
	planDepartment string
)

var planningsCmd = &cobra.Command{
	Use:   "plannings",
	Short: "Manage maintenance plannings",
}

var planningsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plannings",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlanningsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var planningsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a planning",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlanningsAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var planningsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one planning",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlanningsGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var planningsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a planning",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlanningsUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var planningsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a planning",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlanningsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{planningsAddCmd, planningsUpdateCmd} {
		c.Flags().StringVar(&planStart, "start", "", "Start date (yyyy-mm-dd)")
		c.Flags().StringVar(&planEnd, "end", "", "End date (yyyy-mm-dd)")
		c.Flags().StringVar(&planType, "type", "", "Planning type")
		c.Flags().StringVar(&planDepartment, "department", "", "Department")
	}
	planningsAddCmd.MarkFlagRequired("start")
	planningsAddCmd.MarkFlagRequired("end")
	planningsCmd.AddCommand(planningsListCmd, planningsGetCmd, planningsAddCmd,
		planningsUpdateCmd, planningsDeleteCmd)
	rootCmd.AddCommand(planningsCmd)
}

// parseDay parses a yyyy-mm-dd flag into midnight UTC.
func parseDay(flag, value string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q, want yyyy-mm-dd", flag, value)
	}
	return &t, nil
}

// runPlanningsList lists plannings.
func runPlanningsList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "plannings list"); code != exitOK {
		return code
	}

	plannings, err := c.Plannings.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, plannings)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tEND\tTYPE\tDEPARTMENT")
	for _, p := range plannings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, view.FormatDate(p.DateDebut), view.FormatDate(p.DateFin),
			p.TypePlanning, view.Department(p.Department).Label())
	}
	tw.Flush()
	return exitOK
}

// runPlanningsGet shows a single planning.
func runPlanningsGet(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "plannings get"); code != exitOK {
		return code
	}

	p, err := c.Plannings.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, p)
		return exitOK
	}
	fmt.Fprintf(w, "ID: %d\nStart: %s\nEnd: %s\nType: %s\nDepartment: %s\n",
		p.ID, view.FormatDate(p.DateDebut), view.FormatDate(p.DateFin),
		p.TypePlanning, view.Department(p.Department).Label())
	return exitOK
}

// runPlanningsAdd creates a planning window.
func runPlanningsAdd(ctx context.Context, w io.Writer) int {
	start, err := parseDay("start", planStart)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	end, err := parseDay("end", planEnd)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	if end.Before(*start) {
		fmt.Fprintln(w, "Error: end date is before start date")
		return exitDomain
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "plannings add", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	created, err := c.Plannings.Create(ctx, client.Planning{
		DateDebut:    start,
		DateFin:      end,
		TypePlanning: planType,
		Department:   planDepartment,
	})
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Planning %d created.\n", created.ID)
	}
	return exitOK
}

// runPlanningsUpdate fetches, patches, and replaces a planning. Only flags
// the caller set are applied.
func runPlanningsUpdate(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "plannings update", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	p, err := c.Plannings.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if planStart != "" {
		start, err := parseDay("start", planStart)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitDomain
		}
		p.DateDebut = start
	}
	if planEnd != "" {
		end, err := parseDay("end", planEnd)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitDomain
		}
		p.DateFin = end
	}
	if p.DateDebut != nil && p.DateFin != nil && p.DateFin.Before(*p.DateDebut) {
		fmt.Fprintln(w, "Error: end date is before start date")
		return exitDomain
	}
	if planType != "" {
		p.TypePlanning = planType
	}
	if planDepartment != "" {
		p.Department = planDepartment
	}

	updated, err := c.Plannings.Update(ctx, *p)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Planning %d updated.\n", updated.ID)
	}
	return exitOK
}

// runPlanningsDelete removes a planning.
func runPlanningsDelete(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "plannings delete", guard.RoleAdmin, guard.RoleChefOp); code != exitOK {
		return code
	}

	if err := c.Plannings.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Planning %d deleted.\n", id)
	return exitOK
}
