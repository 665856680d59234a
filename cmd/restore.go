// restore.go implements the "flexarc restore" command for reconstructing
// an archived report.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/date"
	"github.com/ib-tools/flexarc/internal/log"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <date>",
	Short: "Reconstruct the report for a date",
	Long: `Reconstruct the exact report snapshot archived for a date.

The date does not need to match an artifact exactly: the snapshot in
effect on that date is returned, i.e. the most recent one at or before it.

  flexarc restore 2026-01-30              # print to stdout
  flexarc restore 2026-01-30 -w out.xml   # write to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runRestore(c *cobra.Command, args []string) error {
	outFile, _ := c.Flags().GetString("write")

	day, err := date.Parse(args[0])
	if err != nil {
		return PrintJSONError(err)
	}

	s, err := openStore(false)
	if err != nil {
		log.Event("restore", "read").Author(Author()).Date(day.String()).Write(err)
		return PrintJSONError(err)
	}

	text, err := s.Restore(day)
	log.Event("restore", "read").Author(Author()).Date(day.String()).
		Detail("bytes", len(text)).Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("restore %s: %w", day, err))
	}

	if JSON() {
		return PrintJSON(map[string]any{
			"date":   day.String(),
			"report": text,
		})
	}
	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(text), 0644); err != nil {
			return PrintJSONError(fmt.Errorf("write %s: %w", outFile, err))
		}
		fmt.Fprintf(Out(), "%s: wrote %d bytes to %s\n", day, len(text), outFile)
		return nil
	}
	fmt.Fprint(Out(), text)
	return nil
}

func init() {
	restoreCmd.Flags().StringP("write", "w", "", "Write the report to a file instead of stdout")
	rootCmd.AddCommand(restoreCmd)
}
