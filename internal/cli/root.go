package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thruflo/todomvc-e2e/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "todomvc-e2e",
	Short: "Browser-driven regression suite for the TodoMVC app",
	Long: `todomvc-e2e drives a real browser against a TodoMVC deployment and runs
the regression scenarios for adding, editing, completing, reopening, deleting
and filtering tasks. Each scenario seeds the app's localStorage, performs its
steps and clears storage again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.LevelDebug)
		}
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("todomvc-e2e version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every step at debug level")
}

// Execute runs the root command. SIGINT and SIGTERM cancel a running suite,
// which still clears storage for the scenario in flight.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
