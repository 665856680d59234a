// stats.go implements the "flexarc stats" command for archive space
// accounting.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/archive"
	"github.com/ib-tools/flexarc/internal/log"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive storage statistics",
	Long: `Show how much space the archive uses on disk versus how much the
snapshots would occupy stored in full, along with artifact counts.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	s, err := openStore(false)
	if err != nil {
		log.Event("stats", "list").Author(Author()).Write(err)
		return PrintJSONError(err)
	}

	var bases, deltas int
	var diskBytes int64
	for _, e := range s.Entries() {
		diskBytes += e.Size
		if e.Kind == archive.KindBase {
			bases++
		} else {
			deltas++
		}
	}

	var latestDate, latestBytes = "", 0
	if latest, ok := s.Latest(); ok {
		text, rerr := s.Restore(latest.Date)
		if rerr != nil {
			log.Event("stats", "list").Author(Author()).Write(rerr)
			return PrintJSONError(fmt.Errorf("reconstruct latest snapshot: %w", rerr))
		}
		latestDate, latestBytes = latest.Date.String(), len(text)
	}

	log.Event("stats", "list").Author(Author()).
		Detail("artifacts", bases+deltas).Detail("bytes", diskBytes).Write(nil)

	if JSON() {
		return PrintJSON(map[string]any{
			"dir":          s.Dir(),
			"bases":        bases,
			"deltas":       deltas,
			"disk_bytes":   diskBytes,
			"latest_date":  latestDate,
			"latest_bytes": latestBytes,
		})
	}

	fmt.Fprintf(Out(), "Archive:       %s\n", s.Dir())
	fmt.Fprintf(Out(), "Bases:         %d\n", bases)
	fmt.Fprintf(Out(), "Deltas:        %d\n", deltas)
	fmt.Fprintf(Out(), "Disk usage:    %d bytes\n", diskBytes)
	if latestDate != "" {
		fmt.Fprintf(Out(), "Latest report: %s (%d bytes)\n", latestDate, latestBytes)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
