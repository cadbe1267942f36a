package splitter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mgpai22/vsplit/internal/video"
)

type CommandBuilder interface {
	Command(inputPath, outputPath string, opts video.ClipOptions) []string
}

// Announcer prints each ffmpeg command line before handing the clip to
// next. A nil next makes it a dry run.
type Announcer struct {
	builder CommandBuilder
	out     io.Writer
	next    Extractor
}

func NewAnnouncer(builder CommandBuilder, out io.Writer, next Extractor) *Announcer {
	return &Announcer{builder: builder, out: out, next: next}
}

func (a *Announcer) ExtractClip(
	ctx context.Context,
	inputPath, outputPath string,
	opts video.ClipOptions,
) error {
	args := a.builder.Command(inputPath, outputPath, opts)
	fmt.Fprintf(a.out, "Running %s\n", strings.Join(args, " "))

	if a.next == nil {
		return nil
	}
	return a.next.ExtractClip(ctx, inputPath, outputPath, opts)
}
