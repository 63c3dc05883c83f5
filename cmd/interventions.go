// ABOUTME: Intervention commands: CRUD on ordreIntervention records
// ABOUTME: Technicians record work done against a parent work order

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
	jobTitle       string
	jobDescription string
	jobReport      string
	jobStatus      string
	jobWorkOrderID int64
)

var interventionsCmd = &cobra.Command{
	Use:   "interventions",
	Short: "Manage interventions",
}

var interventionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all interventions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInterventionsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var interventionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one intervention",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInterventionsGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var interventionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an intervention",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInterventionsAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var interventionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an intervention",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInterventionsUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var interventionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an intervention",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runInterventionsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{interventionsAddCmd, interventionsUpdateCmd} {
		c.Flags().StringVar(&jobTitle, "title", "", "Intervention title")
		c.Flags().StringVar(&jobDescription, "description", "", "Intervention description")
		c.Flags().StringVar(&jobReport, "report", "", "Report text")
		c.Flags().StringVar(&jobStatus, "status", "", "Status (EN_ATTENTE, EN_COURS, TERMINE, ANNULE)")
		c.Flags().Int64Var(&jobWorkOrderID, "work-order", 0, "Parent work order id")
	}
	interventionsCmd.AddCommand(interventionsListCmd, interventionsGetCmd, interventionsAddCmd,
		interventionsUpdateCmd, interventionsDeleteCmd)
	rootCmd.AddCommand(interventionsCmd)
}

// runInterventionsList lists interventions.
func runInterventionsList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "interventions list"); code != exitOK {
		return code
	}

	jobs, err := c.Interventions.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, jobs)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDATE\tWORK ORDER")
	for _, j := range view.MapJobs(jobs) {
		wo := "-"
		if j.WorkOrderID != 0 {
			wo = fmt.Sprint(j.WorkOrderID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Status, j.Date, wo)
	}
	tw.Flush()
	return exitOK
}

// runInterventionsGet shows one intervention.
func runInterventionsGet(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "interventions get"); code != exitOK {
		return code
	}

	iv, err := c.Interventions.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, iv)
		return exitOK
	}
	j := view.MapJob(*iv)
	fmt.Fprintf(w, `Title:      %s
Status:     %s
Date:       %s
Work order: %d
Report:     %s
`, j.Title, j.StatusLabel, j.Date, j.WorkOrderID, j.Report)
	return exitOK
}

// runInterventionsAdd records a new intervention.
func runInterventionsAdd(ctx context.Context, w io.Writer) int {
	if err := validate.Required("title", jobTitle); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "interventions add",
		guard.RoleAdmin, guard.RoleChefTech, guard.RoleTechnicien); code != exitOK {
		return code
	}

	created, err := c.Interventions.Create(ctx, client.Intervention{
		Titre:          jobTitle,
		Description:    jobDescription,
		Rapport:        jobReport,
		Statut:         jobStatus,
		OrdreTravailID: jobWorkOrderID,
	})
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Intervention %d recorded.\n", created.ID)
	}
	return exitOK
}

// runInterventionsUpdate patches an intervention with the set flags.
func runInterventionsUpdate(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "interventions update",
		guard.RoleAdmin, guard.RoleChefTech, guard.RoleTechnicien); code != exitOK {
		return code
	}

	iv, err := c.Interventions.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if jobTitle != "" {
		iv.Titre = jobTitle
	}
	if jobDescription != "" {
		iv.Description = jobDescription
	}
	if jobReport != "" {
		iv.Rapport = jobReport
	}
	if jobStatus != "" {
		iv.Statut = jobStatus
	}
	if jobWorkOrderID != 0 {
		iv.OrdreTravailID = jobWorkOrderID
	}

	updated, err := c.Interventions.Update(ctx, *iv)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Intervention %d updated.\n", updated.ID)
	}
	return exitOK
}

// runInterventionsDelete removes an intervention.
func runInterventionsDelete(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "interventions delete", guard.RoleAdmin, guard.RoleChefTech); code != exitOK {
		return code
	}

	if err := c.Interventions.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Intervention %d deleted.\n", id)
	return exitOK
}
