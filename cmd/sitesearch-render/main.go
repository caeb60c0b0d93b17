// Command sitesearch-render renders search page models and task headers from the command line
package main

import (
	"fmt"
	"os"

	"sitesearch/internal/core/version"
	"sitesearch/internal/platform/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitesearch-render",
		Short:         "Render search page models and task headers",
		Long:          `sitesearch-render builds the same view models the API serves, for debugging site configuration and header markup offline.`,
		Version:       version.Info().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", ".env", "env file loaded before reading SITESEARCH_* settings")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		f, _ := cmd.Flags().GetString("env-file")
		config.LoadDotEnv(f)
	}

	root.AddCommand(newSearchCmd())
	root.AddCommand(newTaskHeaderCmd())
	return root
}

func main() {
	version.Service = "sitesearch-render"
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
