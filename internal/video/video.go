package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mgpai22/vsplit/internal/timestamp"
)

var ErrExtraction = errors.New("extraction failed")

// lines of ffmpeg stderr kept in extraction errors
const stderrTailLines = 8

// video file information
type Info struct {
	Path      string
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
	Codec     string
	HasAudio  bool
}

// defines interface for video processing operations
type Processor interface {
	// copies a time range of the input into outputPath without re-encoding
	ExtractClip(
		ctx context.Context,
		inputPath, outputPath string,
		opts ClipOptions,
	) error

	// retrieves video file information
	GetInfo(ctx context.Context, videoPath string) (*Info, error)
}

// holds options for clip extraction
type ClipOptions struct {
	StartSeconds    float64 // seek offset into the input
	DurationSeconds float64 // clip length; zero copies to the end of the input
	Overwrite       bool    // replace existing output files (-y), otherwise -n
}

var _ Processor = (*DefaultProcessor)(nil)

// default implementation using ffmpeg
type DefaultProcessor struct {
	ffmpegPath  string
	ffprobePath string
}

func NewProcessor(ffmpegPath, ffprobePath string) *DefaultProcessor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &DefaultProcessor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// Command returns the full ffmpeg argv used to extract a clip.
func (p *DefaultProcessor) Command(
	inputPath, outputPath string,
	opts ClipOptions,
) []string {
	kwargs := ffmpeg.KwArgs{
		"c":  "copy", // Stream copy, no re-encoding
		"ss": timestamp.FormatSeconds(opts.StartSeconds),
	}
	if opts.DurationSeconds > 0 {
		kwargs["t"] = timestamp.FormatSeconds(opts.DurationSeconds)
	}

	stream := ffmpeg.Input(inputPath).Output(outputPath, kwargs)
	if opts.Overwrite {
		stream = stream.OverWriteOutput()
	} else {
		stream = stream.GlobalArgs("-n")
	}

	return append([]string{p.ffmpegPath}, stream.GetArgs()...)
}

// extracts a clip from the input file
func (p *DefaultProcessor) ExtractClip(
	ctx context.Context,
	inputPath, outputPath string,
	opts ClipOptions,
) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", inputPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := p.Command(inputPath, outputPath, opts)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if tail := lastLines(stderr.String(), stderrTailLines); tail != "" {
			return fmt.Errorf("%w: %w\nffmpeg: %s", ErrExtraction, err, tail)
		}
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
