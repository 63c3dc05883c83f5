// ABOUTME: Root command for the eamctl console
// ABOUTME: Global flags, client construction, and shared exit-code helpers

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/config"
	"github.com/sagmcom/eamctl/internal/guard"
	"github.com/sagmcom/eamctl/internal/logger"
	"github.com/sagmcom/eamctl/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "eamctl",
	Short: "Console for the Sagmcom EAM gateway",
	Long: `eamctl is a terminal console for the Sagmcom Enterprise Asset Management gateway.

It manages assets, work orders, interventions, plannings, and user accounts
against the EAM backend, with role-aware commands and an interactive dashboard.

Environment Variables:
  EAM_API_URL    Gateway base URL (default: http://localhost:8080)
  EAM_TOKEN      Bearer token, overriding the stored session
  EAM_ALL_PROXY  SSH+SOCKS5 jumpbox (ssh+socks5://user@host:port?private-key=...)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Gateway base URL (overrides EAM_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the gateway URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("EAM_API_URL"); envURL != "" {
		return envURL
	}
	return config.DefaultBaseURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the gateway client from the environment, with the
// --api-url flag taking precedence over EAM_API_URL.
func newClient() (*client.Client, error) {
	return newClientWith(session.Default())
}

// newClientWith builds a client over a specific session provider. Login uses
// it to keep --no-store credentials in memory.
func newClientWith(sess *session.Provider) (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	return client.NewFromConfig(cfg, sess)
}

// Exit codes: 0 success, 1 domain failure (denied, invalid input, not
// found), 2 transport or usage error.
const (
	exitOK        = 0
	exitDomain    = 1
	exitTransport = 2
)

// exitCodeFor classifies an error from the client layer.
func exitCodeFor(err error) int {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Kind == client.KindHTTP {
		return exitDomain
	}
	return exitTransport
}

// reportError prints a gateway failure the way the UI would: the server's
// own message with the status attached, or the transport failure as-is.
func reportError(w io.Writer, err error) int {
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.Kind == client.KindHTTP {
		fmt.Fprintf(w, "Error: %s (HTTP %d)\n", apiErr.ServerMessage(), apiErr.Status)
		return exitDomain
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitTransport
}

// checkAccess runs the role guard for a command. It returns exitOK when the
// command may proceed; otherwise it prints the reason and returns the exit
// code the command should finish with.
func checkAccess(w io.Writer, c *client.Client, command string, allowed ...string) int {
	switch guard.CheckProvider(c.Session(), allowed, command) {
	case guard.Authorized:
		return exitOK
	case guard.Unauthorized:
		fmt.Fprintln(w, "Error: your role does not allow this command")
		return exitDomain
	default:
		fmt.Fprintf(w, "Error: not signed in; run 'eamctl login' first (attempted: %s)\n", command)
		return exitDomain
	}
}
