// archive.go implements the "flexarc archive" command for storing a
// report snapshot.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/config"
	"github.com/ib-tools/flexarc/internal/date"
	"github.com/ib-tools/flexarc/internal/log"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [file]",
	Short: "Store a report snapshot for a date",
	Long: `Store a Flex Query report snapshot in the archive.

Reads the report from the given file, or from stdin when the file is "-"
or omitted. The first snapshot is stored as a full base; later snapshots
are stored as line-based deltas unless the change is large enough that a
fresh base is cheaper.

  flexarc archive report.xml                # archive today's report
  flexarc archive report.xml -d 2026-01-30  # archive for an explicit date
  curl ... | flexarc archive                # archive from a pipe

Re-archiving a date replaces the snapshot stored for that date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchive,
}

func runArchive(c *cobra.Command, args []string) error {
	dateStr, _ := c.Flags().GetString("date")

	day := date.Today()
	if dateStr != "" {
		var err error
		day, err = date.Parse(dateStr)
		if err != nil {
			return PrintJSONError(err)
		}
	}

	text, src, err := readReport(args)
	if err != nil {
		log.Event("archive", "write").Author(Author()).Date(day.String()).Write(err)
		return PrintJSONError(err)
	}

	cfg, err := config.Load()
	if err != nil {
		return PrintJSONError(err)
	}
	if int64(len(text)) > cfg.MaxReport() {
		err = fmt.Errorf("report is %d bytes, over the %d byte limit (limits.max_report)",
			len(text), cfg.MaxReport())
		log.Event("archive", "write").Author(Author()).Date(day.String()).Write(err)
		return PrintJSONError(err)
	}

	s, err := openStore(true)
	if err != nil {
		log.Event("archive", "write").Author(Author()).Date(day.String()).Write(err)
		return PrintJSONError(err)
	}

	entry, err := s.Archive(text, day)
	b := log.Event("archive", "write").Author(Author()).Date(day.String()).Detail("source", src)
	if err == nil {
		b = b.Artifact(entry.Name)
	}
	b.Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("archive %s: %w", day, err))
	}

	if JSON() {
		return PrintJSON(map[string]any{
			"date":     day.String(),
			"kind":     entry.Kind.String(),
			"artifact": entry.Name,
			"size":     entry.Size,
		})
	}
	fmt.Fprintf(Out(), "%s: stored %s (%s, %d bytes)\n", day, entry.Name, entry.Kind, entry.Size)
	return nil
}

// readReport reads the snapshot text from the named file, or stdin when
// no file (or "-") is given. Returns the text and a source label for the
// audit log.
func readReport(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read report: %w", err)
	}
	return string(data), args[0], nil
}

func init() {
	archiveCmd.Flags().StringP("date", "d", "", "Report date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(archiveCmd)
}
