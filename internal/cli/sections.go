package cli

import (
	"fmt"

	"github.com/mgpai22/vsplit/internal/sections"
	"github.com/mgpai22/vsplit/internal/timestamp"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [config]",
	Short: "Show the sections a config resolves to",
	Long: `Parse a section config and print every section with its resolved start,
end and duration, without touching any media.

Examples:
  vsplit sections sections.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	secs, err := sections.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSections(out, secs)

	var total float64
	open := 0
	for _, section := range secs {
		if duration, ok := section.Duration(); ok {
			total += duration
		} else {
			open++
		}
	}

	fmt.Fprintf(out, "%d sections, %s seconds", len(secs), timestamp.FormatSeconds(total))
	if open > 0 {
		fmt.Fprintf(out, " plus %d running to the end of the input", open)
	}
	fmt.Fprintln(out)

	return nil
}
