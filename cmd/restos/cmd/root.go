package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "restos",
	Short: "Import and analyze SRI electronic fiscal documents",
	Long: `Restos imports Ecuadorian SRI authorization files (facturas and
notas de credito), validates them and computes expense aggregates.

Examples:
  # Parse a directory of authorization XML files
  restos process invoices/

  # Aggregate dashboard numbers for a batch
  restos summary invoices/*.xml

  # Serve the import API for the dashboard
  restos serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
}

// newLogger builds the CLI logger; --verbose raises it to debug.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
