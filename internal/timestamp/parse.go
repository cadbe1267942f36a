package timestamp

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidFormat = errors.New("invalid time format")

// [hh:]mm:ss with optional fractional seconds; prefix match, trailing text is ignored
var colonPattern = regexp.MustCompile(`^(?:(\d+):)?(\d+):(\d+(?:\.\d+)?)`)

// [Xh][, ][Ym][, ][Zs], every component optional, suffixes case-insensitive
var letterPattern = regexp.MustCompile(
	`^(?:(\d+)[hH],?\s*)?(?:(\d+)[mM],?\s*)?(?:(\d+)[sS],?\s*)?`,
)

type inputKind int

const (
	kindText inputKind = iota
	kindNumber
)

// raw time value as it appeared in a config document: either a number
// (minutes) or free text in one of the supported notations
type Input struct {
	kind   inputKind
	number float64
	text   string
}

func Number(minutes float64) Input {
	return Input{kind: kindNumber, number: minutes}
}

func Text(s string) Input {
	return Input{kind: kindText, text: s}
}

// Parse converts a time input to a normalized Timestamp.
//
// Numbers, and text that parses as a number, are minutes: "90" is 1h30m.
// Other text must be clock time ("1:02:03", "02:03.5") or letter
// shorthand ("1h30m", "90s", "1h, 5m 3s").
func Parse(in Input) (Timestamp, error) {
	switch in.kind {
	case kindNumber:
		return fromMinutes(in.number)
	case kindText:
		return parseText(in.text)
	default:
		return Timestamp{}, fmt.Errorf("%w: unknown input kind", ErrInvalidFormat)
	}
}

func fromMinutes(value float64) (Timestamp, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Timestamp{}, fmt.Errorf("%w: %v minutes", ErrInvalidFormat, value)
	}

	hours := math.Floor(value / 60)
	minutes := math.Floor(math.Mod(value, 60))
	seconds := (value - math.Floor(value)) * 60

	return Normalize(int(hours), int(minutes), seconds), nil
}

func parseText(raw string) (Timestamp, error) {
	s := strings.TrimSpace(raw)

	if value, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMinutes(value)
	}

	if m := colonPattern.FindStringSubmatch(s); m != nil {
		hours, err := atoiOptional(m[1])
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
		}
		minutes, err := strconv.Atoi(m[2])
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
		}
		seconds, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
		}
		return Normalize(hours, minutes, seconds), nil
	}

	m := letterPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	var parts [3]int
	for i, group := range m[1:] {
		v, err := atoiOptional(group)
		if err != nil {
			return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
		}
		parts[i] = v
	}

	return Normalize(parts[0], parts[1], float64(parts[2])), nil
}

func atoiOptional(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
