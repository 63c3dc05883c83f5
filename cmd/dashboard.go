// ABOUTME: Dashboard command launching the interactive TUI
// ABOUTME: Requires a signed-in session before starting the program

package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sagmcom/eamctl/internal/tui"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long:  `Open a terminal dashboard with live machine and work order tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runDashboard(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard starts the TUI and returns the exit code.
func runDashboard(w io.Writer) int {
	c, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if code := checkAccess(w, c, "dashboard"); code != exitOK {
		return code
	}

	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	return exitOK
}
