package sections

import (
	"fmt"

	"github.com/mgpai22/vsplit/internal/timestamp"
)

// one named clip to cut from the source
type Section struct {
	Name  string
	Start timestamp.Timestamp
	End   *timestamp.Timestamp // nil runs to the end of the source
}

func (s Section) StartSeconds() float64 {
	return s.Start.TotalSeconds()
}

// Duration reports the clip length in seconds; ok is false when the
// section runs to the end of the source.
func (s Section) Duration() (seconds float64, ok bool) {
	if s.End == nil {
		return 0, false
	}
	return timestamp.RoundSeconds(s.End.TotalSeconds() - s.StartSeconds()), true
}

// human readable summary printed before extraction
func (s Section) Describe() string {
	if s.End == nil {
		return fmt.Sprintf(
			"%s:\n\t%s -> end \n\t(until end of input)",
			s.Name,
			s.Start,
		)
	}

	duration, _ := s.Duration()
	return fmt.Sprintf(
		"%s:\n\t%s -> %s \n\t(%s seconds)",
		s.Name,
		s.Start,
		*s.End,
		timestamp.FormatSeconds(duration),
	)
}
