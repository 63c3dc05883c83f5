// ABOUTME: Asset commands: list, get, add, update, delete machines
// ABOUTME: Mutations are restricted to admins and chef techniciens

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/validate"
	"github.com/sagmcom/eamctl/internal/view"
	"github.com/spf13/cobra"
)

var (
	assetName        string
	assetType        string
	assetLocation    string
	assetStatus      string
	assetCondition   string
	assetCriticality string
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage machines",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all machines",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAssetsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var assetsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAssetsGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var assetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a machine",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAssetsAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var assetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAssetsUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a machine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAssetsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{assetsAddCmd, assetsUpdateCmd} {
		c.Flags().StringVar(&assetName, "name", "", "Machine name")
		c.Flags().StringVar(&assetType, "type", "", "Machine type")
		c.Flags().StringVar(&assetLocation, "location", "", "Machine location")
		c.Flags().StringVar(&assetStatus, "status", "", "Lifecycle status (EN_ATTENTE, EN_COURS, TERMINE, ANNULE)")
		c.Flags().StringVar(&assetCondition, "condition", "", "Condition (EXCELLENT, GOOD, FAIR, POOR)")
		c.Flags().StringVar(&assetCriticality, "criticality", "", "Criticality (CRITICAL, HIGH, MEDIUM, LOW)")
	}
	assetsCmd.AddCommand(assetsListCmd, assetsGetCmd, assetsAddCmd, assetsUpdateCmd, assetsDeleteCmd)
	rootCmd.AddCommand(assetsCmd)
}

// parseID converts a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// printJSON writes indented JSON output.
func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// runAssetsList lists machines and returns the exit code.
func runAssetsList(ctx context.Context, w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "assets list"); code != exitOK {
		return code
	}

	machines, err := c.Assets.List(ctx)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, machines)
		return exitOK
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tLOCATION\tSTATUS\tNEXT MAINTENANCE")
	for _, a := range view.MapAssets(machines) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Type, a.Location, a.Status, a.NextMaintenance)
	}
	tw.Flush()
	return exitOK
}

// runAssetsGet shows one machine.
func runAssetsGet(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "assets get"); code != exitOK {
		return code
	}

	m, err := c.Assets.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, m)
		return exitOK
	}
	a := view.MapAsset(*m)
	fmt.Fprintf(w, `Name:             %s
Type:             %s
Location:         %s
Status:           %s
Condition:        %s
Criticality:      %s
Last maintenance: %s
Next maintenance: %s
`, a.Name, a.Type, a.Location, a.StatusLabel, a.Condition, a.Criticality, a.LastMaintenance, a.NextMaintenance)
	return exitOK
}

// runAssetsAdd creates a machine.
func runAssetsAdd(ctx context.Context, w io.Writer) int {
	if err := validate.Required("name", assetName); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	if err := validate.Required("type", assetType); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitDomain
	}
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "assets add", guard.RoleAdmin, guard.RoleChefTech); code != exitOK {
		return code
	}

	created, err := c.Assets.Create(ctx, client.Machine{
		Nom:         assetName,
		Type:        assetType,
		Emplacement: assetLocation,
		Statut:      assetStatus,
		Condition:   assetCondition,
		Criticality: assetCriticality,
	})
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, created)
	} else {
		fmt.Fprintf(w, "Machine %d created.\n", created.ID)
	}
	return exitOK
}

// runAssetsUpdate fetches, patches, and replaces a machine. Only flags the
// caller set are applied; everything else keeps the gateway's value.
func runAssetsUpdate(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "assets update", guard.RoleAdmin, guard.RoleChefTech); code != exitOK {
		return code
	}

	m, err := c.Assets.Get(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if assetName != "" {
		m.Nom = assetName
	}
	if assetType != "" {
		m.Type = assetType
	}
	if assetLocation != "" {
		m.Emplacement = assetLocation
	}
	if assetStatus != "" {
		m.Statut = assetStatus
	}
	if assetCondition != "" {
		m.Condition = assetCondition
	}
	if assetCriticality != "" {
		m.Criticality = assetCriticality
	}

	updated, err := c.Assets.Update(ctx, *m)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printJSON(w, updated)
	} else {
		fmt.Fprintf(w, "Machine %d updated.\n", updated.ID)
	}
	return exitOK
}

// runAssetsDelete removes a machine.
func runAssetsDelete(ctx context.Context, w io.Writer, arg string) int {
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
	if code := checkAccess(w, c, "assets delete", guard.RoleAdmin, guard.RoleChefTech); code != exitOK {
		return code
	}

	if err := c.Assets.Delete(ctx, id); err != nil {
		return reportError(w, err)
	}
	fmt.Fprintf(w, "Machine %d deleted.\n", id)
	return exitOK
}
