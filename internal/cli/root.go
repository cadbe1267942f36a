package cli

import (
	"github.com/mgpai22/vsplit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vsplit [input] [config]",
	Short: "Split a video into named sections without re-encoding",
	Long: `vsplit cuts a single media file into one file per section listed in a
YAML config. Each section is copied with ffmpeg's stream copy, so no
re-encoding takes place.

Config format:
  intro: 2.5            # bare number: ends at 2.5 minutes
  talk:
    end: 1h5m           # starts where the previous section ended
  qa:
    start: "1:06:00"    # [hh:]mm:ss, XhYmZs, or minutes
    end: "1:30:00"
  outro:
    start: 91           # no end: runs to the end of the input

Run without arguments to be prompted for the input and config paths.

Examples:
  vsplit talk.mp4 sections.yaml
  vsplit talk.mp4 sections.yaml -o clips/
  vsplit talk.mp4 sections.yaml --dry-run
  vsplit talk.mp4 sections.yaml --watch`,
	Args: splitArgs,
	RunE: runSplit,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output directory (default: <input>_split next to the input)")
}
