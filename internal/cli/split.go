package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mgpai22/vsplit/internal/ffmpeg"
	"github.com/mgpai22/vsplit/internal/prompt"
	"github.com/mgpai22/vsplit/internal/sections"
	"github.com/mgpai22/vsplit/internal/splitter"
	"github.com/mgpai22/vsplit/internal/video"
	"github.com/mgpai22/vsplit/internal/watch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().
		Bool("dry-run", false, "Print the ffmpeg commands without running them")
	rootCmd.Flags().
		Bool("overwrite", true, "Overwrite clips that already exist in the output directory")
	rootCmd.Flags().
		Bool("watch", false, "Re-run the split whenever the config file changes")
	rootCmd.Flags().
		Bool("no-probe", false, "Skip checking sections against the input duration")
}

func splitArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) == 2 {
		return nil
	}
	return fmt.Errorf(
		"expected an input file and a config file, got %d argument(s)",
		len(args),
	)
}

// one configured split of an input file
type splitJob struct {
	inputPath  string
	configPath string
	outputDir  string
	dryRun     bool
	overwrite  bool
	probe      bool
	processor  *video.DefaultProcessor
	out        io.Writer
}

func runSplit(cmd *cobra.Command, args []string) error {
	var inputPath, configPath string
	if len(args) == 2 {
		inputPath, configPath = args[0], args[1]
	} else {
		var err error
		inputPath, configPath, err = prompt.Paths(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	watchConfig, _ := cmd.Flags().GetBool("watch")
	noProbe, _ := cmd.Flags().GetBool("no-probe")
	outputDir, _ := cmd.Flags().GetString("output")

	if outputDir == "" {
		outputDir = splitter.DefaultOutputDir(inputPath)
	}

	if !dryRun {
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", inputPath)
		}
	}
	if !video.IsMediaFile(inputPath) {
		logger.Warnw("Input does not look like a media file",
			"input", inputPath,
			"extension", filepath.Ext(inputPath),
		)
	}

	processor, err := newProcessor(dryRun)
	if err != nil {
		return err
	}

	job := &splitJob{
		inputPath:  inputPath,
		configPath: configPath,
		outputDir:  outputDir,
		dryRun:     dryRun,
		overwrite:  overwrite,
		probe:      !noProbe && !dryRun,
		processor:  processor,
		out:        cmd.OutOrStdout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := job.run(ctx); err != nil {
		return err
	}
	if !watchConfig {
		return nil
	}

	w, err := watch.New(configPath, job.run, logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// dry runs never touch ffmpeg, so they skip binary discovery
func newProcessor(dryRun bool) (*video.DefaultProcessor, error) {
	if dryRun {
		return video.NewProcessor("", ""), nil
	}

	paths, err := ffmpeg.Ensure()
	if err != nil {
		return nil, fmt.Errorf("failed to locate ffmpeg: %w", err)
	}
	logger.Debugw("Using ffmpeg",
		"ffmpeg", paths.FFmpeg,
		"ffprobe", paths.FFprobe,
	)
	return video.NewProcessor(paths.FFmpeg, paths.FFprobe), nil
}

func (j *splitJob) run(ctx context.Context) error {
	secs, err := sections.Load(j.configPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(j.out, "Config is: ")
	printSections(j.out, secs)

	if j.probe {
		j.checkBounds(ctx, secs)
	}

	logger.Infow("Splitting input",
		"input", j.inputPath,
		"output", j.outputDir,
		"sections", len(secs),
		"dry_run", j.dryRun,
	)

	var next splitter.Extractor
	if !j.dryRun {
		next = j.processor
	}
	extractor := splitter.NewAnnouncer(j.processor, j.out, next)

	opts := splitter.Options{Overwrite: j.overwrite, DryRun: j.dryRun}
	results, err := splitter.New(extractor, logger, opts).
		Split(ctx, j.inputPath, j.outputDir, secs)
	if err != nil {
		return err
	}
	if j.dryRun {
		return nil
	}

	absOutput, _ := filepath.Abs(j.outputDir)
	fmt.Fprintf(j.out, "Split into %d sections: %s\n", len(results), absOutput)
	return nil
}

// warns about sections outside the input; probe failures are not fatal
func (j *splitJob) checkBounds(ctx context.Context, secs []sections.Section) {
	info, err := j.processor.GetInfo(ctx, j.inputPath)
	if err != nil {
		logger.Warnw("Could not probe input, skipping range check",
			"input", j.inputPath,
			"error", err,
		)
		return
	}

	logger.Debugw("Probed input",
		"duration", info.Duration.String(),
		"codec", info.Codec,
		"resolution", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"frame_rate", info.FrameRate,
		"has_audio", info.HasAudio,
	)

	for _, section := range splitter.OutOfRange(secs, info.Duration) {
		logger.Warnw("Section extends past the end of the input",
			"section", section.Name,
			"start_seconds", section.StartSeconds(),
			"input_duration", info.Duration.String(),
		)
	}
}

func printSections(out io.Writer, secs []sections.Section) {
	for _, section := range secs {
		fmt.Fprintln(out, section.Describe())
	}
}
