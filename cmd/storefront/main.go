package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configDir string
	logLevel  string
	noColor   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		storeerrors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Reactive storefront demo",
		Long: `Storefront renders a small shop built on a reactive component core.

Properties drive components directly: a change to the cart rebuilds only
the components that read it. The preview server pushes every change to
connected browsers over a WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				storeerrors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "dir", "C", ".", "Directory containing storefront.json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from storefront.json)")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		exportCmd(),
		errorsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}
