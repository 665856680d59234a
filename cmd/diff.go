// diff.go implements the "flexarc diff" command for comparing two
// archived snapshots.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ib-tools/flexarc/internal/date"
	"github.com/ib-tools/flexarc/internal/diff"
	"github.com/ib-tools/flexarc/internal/log"
)

var diffCmd = &cobra.Command{
	Use:   "diff <from-date> <to-date>",
	Short: "Compare two archived snapshots",
	Long: `Show a human-readable line diff between the snapshots archived for
two dates. Both snapshots are reconstructed exactly before comparing, so
the output reflects report content, not the stored delta encoding.

  flexarc diff 2026-01-29 2026-01-30`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool("raw")

	from, err := date.Parse(args[0])
	if err != nil {
		return PrintJSONError(err)
	}
	to, err := date.Parse(args[1])
	if err != nil {
		return PrintJSONError(err)
	}

	s, err := openStore(false)
	if err != nil {
		log.Event("diff", "read").Author(Author()).Write(err)
		return PrintJSONError(err)
	}

	var fromText, toText string
	fromText, err = s.Restore(from)
	if err == nil {
		toText, err = s.Restore(to)
	}
	log.Event("diff", "read").Author(Author()).
		Detail("from", from.String()).Detail("to", to.String()).Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("diff %s %s: %w", from, to, err))
	}

	r := diff.Compute(fromText, toText, from.String(), to.String())

	if JSON() {
		return PrintJSON(map[string]string{
			"from": from.String(),
			"to":   to.String(),
			"diff": r.Diff,
		})
	}

	colour := !raw && term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(Out(), r.Format(colour))
	return nil
}

func init() {
	diffCmd.Flags().Bool("raw", false, "Disable colour output")
	rootCmd.AddCommand(diffCmd)
}
