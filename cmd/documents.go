// ABOUTME: Rapport and archive commands against the document service
// ABOUTME: Reports are generated per intervention; archives are the file catalog

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
	rapportInterventionID int64
	rapportTitle          string
	rapportDescription    string
	rapportFile           string
	archiveType           string
)

var rapportsCmd = &cobra.Command{
	Use:   "rapports",
	Short: "Browse generated reports",
}

var rapportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRapportsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var rapportsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Upload a report document for an intervention",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRapportsGenerate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse the file archive catalog",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archive records",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runArchiveList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one archive record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runArchiveGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an archive record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runArchiveDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive catalog totals",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runArchiveStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rapportsListCmd.Flags().Int64Var(&rapportInterventionID, "intervention", 0, "Filter by intervention id")
	rapportsGenerateCmd.Flags().Int64Var(&rapportInterventionID, "intervention", 0, "Intervention to report on")
	rapportsGenerateCmd.Flags().StringVar(&rapportTitle, "title", "", "Report title")
	rapportsGenerateCmd.Flags().StringVar(&rapportDescription, "description", "", "Report description")
	rapportsGenerateCmd.Flags().StringVar(&rapportFile, "file", "", "Path to the report document to upload")
	rapportsGenerateCmd.MarkFlagRequired("intervention")
	rapportsGenerateCmd.MarkFlagRequired("title")
	rapportsGenerateCmd.MarkFlagRequired("file")
	archiveListCmd.Flags().StringVar(&archiveType, "type", "", "Filter by archive type")
	rapportsCmd.AddCommand(rapportsListCmd, rapportsGenerateCmd)
	archiveCmd.AddCommand(archiveListCmd, archiveGetCmd, archiveDeleteCmd, archiveStatsCmd)
	rootCmd.AddCommand(rapportsCmd, archiveCmd)
}

// runRapportsList lists reports, optionally scoped to an intervention.
func runRapportsList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "rapports list"); code != exitOK {
		return code
	}

	var rapports []client.Rapport
	if rapportInterventionID != 0 {
		rapports, err = c.Rapports.ForIntervention(ctx, rapportInterventionID)
	} else {
		rapports, err = c.Rapports.List(ctx)
	}
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, rapports)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tINTERVENTION\tCREATED")
	for _, r := range rapports {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", r.ID, r.Titre, r.InterventionID, view.FormatDate(r.CreatedAt))
	}
	tw.Flush()
	return exitOK
}

// runRapportsGenerate uploads a report document for an intervention.
func runRapportsGenerate(ctx context.Context, w io.Writer) int {
	if err := validate.Required("title", rapportTitle); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	f, err := os.Open(rapportFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	defer f.Close()

	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "rapports generate",
		guard.RoleAdmin, guard.RoleChefTech, guard.RoleTechnicien); code != exitOK {
		return code
	}

	rapport, err := c.Rapports.Generate(ctx, rapportInterventionID, rapportTitle, rapportDescription, rapportFile, f)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, rapport)
	} else {
		fmt.Fprintf(w, "Report %d generated for intervention %d.\n", rapport.ID, rapportInterventionID)
	}
	return exitOK
}

// runArchiveList lists archive records, optionally filtered by type.
func runArchiveList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "archive list"); code != exitOK {
		return code
	}

	var archives []client.Archive
	if archiveType != "" {
		archives, err = c.Archives.ByType(ctx, archiveType)
	} else {
		archives, err = c.Archives.List(ctx)
	}
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, archives)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILENAME\tTYPE\tSIZE\tLINKED TO\tCREATED")
	for _, a := range archives {
		linked := "-"
		if a.LinkedEntityType != "" {
			linked = fmt.Sprintf("%s %d", a.LinkedEntityType, a.LinkedEntityID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			a.ID, a.Filename, a.Type, a.SizeBytes, linked, view.FormatDate(a.CreatedAt))
	}
	tw.Flush()
	return exitOK
}

// runArchiveGet shows a single archive record.
func runArchiveGet(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "archive get"); code != exitOK {
		return code
	}

	archive, err := c.Archives.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, archive)
		return exitOK
	}
	fmt.Fprintf(w, "ID: %d\nFilename: %s\nOriginal name: %s\nContent type: %s\nType: %s\nVersion: %d\nSize: %d bytes\nSHA-256: %s\n",
		archive.ID, archive.Filename, archive.OriginalFilename, archive.ContentType,
		archive.Type, archive.Version, archive.SizeBytes, archive.ChecksumSHA256)
	if archive.LinkedEntityType != "" {
		fmt.Fprintf(w, "Linked to: %s %d\n", archive.LinkedEntityType, archive.LinkedEntityID)
	}
	fmt.Fprintf(w, "Created: %s\n", view.FormatDate(archive.CreatedAt))
	return exitOK
}

// runArchiveDelete removes an archive record.
func runArchiveDelete(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "archive delete", guard.RoleAdmin); code != exitOK {
		return code
	}

	if err := c.Archives.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Archive %d deleted.\n", id)
	return exitOK
}

// runArchiveStats prints catalog totals.
func runArchiveStats(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "archive stats"); code != exitOK {
		return code
	}

	stats, err := c.Archives.Statistics(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, stats)
		return exitOK
	}
	fmt.Fprintf(w, "Files: %d\nTotal size: %d bytes\n", stats.TotalCount, stats.TotalBytes)
	return exitOK
}
