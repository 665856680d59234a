// root.go defines the root command and CLI execution entry point.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/archive"
	"github.com/ib-tools/flexarc/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "flexarc",
	Short: "Delta-compressed archive for Flex Query report snapshots",
	Long: `Stores daily Flex Query XML snapshots as full bases plus line-based
deltas, reconstructing the exact report text for any archived date.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Detect author if not explicitly set
		if author == "" {
			author = detectAuthor()
		}
		return nil
	},
}

// openStore opens the archive directory, creating it first when create is
// set. The resolved directory is also registered with the audit logger.
func openStore(create bool) (*archive.Store, error) {
	d := ArchiveDir()
	if create {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("create archive directory %s: %w", d, err)
		}
	}
	s, err := archive.Open(d)
	if err != nil {
		return nil, err
	}
	if abs, absErr := filepath.Abs(d); absErr == nil {
		log.SetArchive(abs)
	}
	return s, nil
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and exits 1 on error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
