package timestamp

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sameTimestamp(a, b Timestamp) bool {
	return a.Hours == b.Hours && a.Minutes == b.Minutes && approxEqual(a.Seconds, b.Seconds)
}

func TestParseText(t *testing.T) {
	tests := []struct {
		input string
		want  Timestamp
	}{
		// numeric text is always minutes
		{"90", Timestamp{1, 30, 0}},
		{"5", Timestamp{0, 5, 0}},
		{"5.5", Timestamp{0, 5, 30}},
		{" 90 ", Timestamp{1, 30, 0}},
		{"0", Timestamp{0, 0, 0}},
		{"125.25", Timestamp{2, 5, 15}},

		// clock time
		{"1:02:03", Timestamp{1, 2, 3}},
		{"02:03", Timestamp{0, 2, 3}},
		{"1:02:03.5", Timestamp{1, 2, 3.5}},
		{"00:00:00", Timestamp{0, 0, 0}},
		{"0:75:90", Timestamp{1, 16, 30}},
		{"90:00", Timestamp{1, 30, 0}},
		{"1:02:03 trailing", Timestamp{1, 2, 3}},

		// letter shorthand
		{"1h30m", Timestamp{1, 30, 0}},
		{"90s", Timestamp{0, 1, 30}},
		{"2m", Timestamp{0, 2, 0}},
		{"3h", Timestamp{3, 0, 0}},
		{"1H, 5M 3S", Timestamp{1, 5, 3}},
		{"1h 30m 15s", Timestamp{1, 30, 15}},
		{"1h,30m,15s", Timestamp{1, 30, 15}},
		{"75m", Timestamp{1, 15, 0}},
		{"1m3600s", Timestamp{1, 1, 0}},
		{"1h30mfoo", Timestamp{1, 30, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(Text(tt.input))
			if err != nil {
				t.Fatalf("Parse(Text(%q)) returned error: %v", tt.input, err)
			}
			if !sameTimestamp(got, tt.want) {
				t.Errorf("Parse(Text(%q)) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTextInvalid(t *testing.T) {
	tests := []string{
		"not a time",
		"",
		"   ",
		"-5",
		"nan",
		"inf",
		"1.5s",
		"h30m",
		"abc 1h",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(Text(input))
			if err == nil {
				t.Fatalf("Parse(Text(%q)) expected error", input)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse(Text(%q)) error = %v, want ErrInvalidFormat", input, err)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		minutes float64
		want    Timestamp
	}{
		{90, Timestamp{1, 30, 0}},
		{5, Timestamp{0, 5, 0}},
		{0.5, Timestamp{0, 0, 30}},
		{1.1, Timestamp{0, 1, 6}},
		{61.75, Timestamp{1, 1, 45}},
	}

	for _, tt := range tests {
		got, err := Parse(Number(tt.minutes))
		if err != nil {
			t.Fatalf("Parse(Number(%v)) returned error: %v", tt.minutes, err)
		}
		if !sameTimestamp(got, tt.want) {
			t.Errorf("Parse(Number(%v)) = %+v, want %+v", tt.minutes, got, tt.want)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := Parse(Number(v)); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(Number(%v)) error = %v, want ErrInvalidFormat", v, err)
		}
	}
}

func TestNumericTextMatchesNumber(t *testing.T) {
	fromText, err := Parse(Text("90"))
	if err != nil {
		t.Fatalf("Parse(Text): %v", err)
	}
	fromNumber, err := Parse(Number(90.0))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if fromText != fromNumber {
		t.Errorf("text %+v and number %+v disagree", fromText, fromNumber)
	}
	if fromText != (Timestamp{1, 30, 0}) {
		t.Errorf("expected 1h 30m 0s, got %+v", fromText)
	}
}
