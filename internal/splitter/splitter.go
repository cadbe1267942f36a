package splitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/vsplit/internal/logging"
	"github.com/mgpai22/vsplit/internal/sections"
	"github.com/mgpai22/vsplit/internal/video"
)

// performs a single clip extraction
type Extractor interface {
	ExtractClip(
		ctx context.Context,
		inputPath, outputPath string,
		opts video.ClipOptions,
	) error
}

type Options struct {
	Overwrite bool
	DryRun    bool // leave the output directory uncreated
}

// Splitter cuts one input into its configured sections, one at a time.
type Splitter struct {
	extractor Extractor
	logger    *logging.Logger
	opts      Options
}

func New(extractor Extractor, logger *logging.Logger, opts Options) *Splitter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Splitter{
		extractor: extractor,
		logger:    logger,
		opts:      opts,
	}
}

// describes one extracted section
type Result struct {
	Section    sections.Section
	OutputPath string
}

// Split extracts every section in declaration order. The first failure
// stops the run; clips already written are left in place.
func (s *Splitter) Split(
	ctx context.Context,
	inputPath, outputDir string,
	secs []sections.Section,
) ([]Result, error) {
	if !s.opts.DryRun {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]Result, 0, len(secs))
	for i, section := range secs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		outputPath := OutputPath(outputDir, inputPath, section)
		opts := ClipOptions(section, s.opts.Overwrite)

		s.logger.Infow("Extracting section",
			"section", section.Name,
			"index", i+1,
			"total", len(secs),
			"start_seconds", opts.StartSeconds,
			"duration_seconds", opts.DurationSeconds,
			"output", outputPath,
		)

		if err := s.extractor.ExtractClip(ctx, inputPath, outputPath, opts); err != nil {
			return results, fmt.Errorf("section %q: %w", section.Name, err)
		}

		results = append(results, Result{Section: section, OutputPath: outputPath})
	}

	return results, nil
}

// ClipOptions maps a section onto extractor options.
func ClipOptions(section sections.Section, overwrite bool) video.ClipOptions {
	opts := video.ClipOptions{
		StartSeconds: section.StartSeconds(),
		Overwrite:    overwrite,
	}
	if duration, ok := section.Duration(); ok {
		opts.DurationSeconds = duration
	}
	return opts
}

// OutputPath names a clip after its section, keeping the input extension.
func OutputPath(outputDir, inputPath string, section sections.Section) string {
	return filepath.Join(outputDir, section.Name+filepath.Ext(inputPath))
}

// DefaultOutputDir is "<stem>_split" next to the input file.
func DefaultOutputDir(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// dotfile such as ".hidden" has no extension to strip
		stem = base
	}
	return filepath.Join(filepath.Dir(inputPath), stem+"_split")
}

// OutOfRange returns the sections that start at or after the end of the
// source, or end beyond it.
func OutOfRange(secs []sections.Section, sourceDuration time.Duration) []sections.Section {
	if sourceDuration <= 0 {
		return nil
	}

	limit := sourceDuration.Seconds()
	var out []sections.Section
	for _, section := range secs {
		if section.StartSeconds() >= limit {
			out = append(out, section)
			continue
		}
		if section.End != nil && section.End.TotalSeconds() > limit {
			out = append(out, section)
		}
	}
	return out
}
