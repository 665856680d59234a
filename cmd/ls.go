// ls.go implements the "flexarc ls" command for listing archive contents.

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ib-tools/flexarc/internal/log"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List archived snapshots",
	Long: `List the artifacts in the archive in date order, oldest first.

Each date has at most one artifact: a full base or a delta against the
previous snapshot.`,
	Args: cobra.NoArgs,
	RunE: runLs,
}

func runLs(_ *cobra.Command, _ []string) error {
	s, err := openStore(false)
	log.Event("ls", "list").Author(Author()).Write(err)
	if err != nil {
		return PrintJSONError(err)
	}

	entries := s.Entries()

	if JSON() {
		type row struct {
			Date     string `json:"date"`
			Kind     string `json:"kind"`
			Artifact string `json:"artifact"`
			Size     int64  `json:"size"`
		}
		rows := make([]row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, row{
				Date:     e.Date.String(),
				Kind:     e.Kind.String(),
				Artifact: e.Name,
				Size:     e.Size,
			})
		}
		return PrintJSON(rows)
	}

	if len(entries) == 0 {
		fmt.Fprintln(Out(), "archive is empty")
		return nil
	}

	w := tabwriter.NewWriter(Out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tKIND\tSIZE\tARTIFACT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Date, e.Kind, e.Size, e.Name)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
