package timestamp

import (
	"fmt"
	"math"
	"strconv"
)

// seconds are rounded to this many decimal places so that float
// arithmetic on fractional minutes does not leak into output names and
// ffmpeg arguments
const secondsPrecision = 1e6

// normalized point in the source timeline.
// Minutes and Seconds are always in [0, 60); Hours is unbounded.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds float64
}

// Normalize carries seconds >= 60 into minutes and minutes >= 60 into hours.
func Normalize(hours, minutes int, seconds float64) Timestamp {
	seconds = RoundSeconds(seconds)

	if seconds >= 60 {
		carry := math.Floor(seconds / 60)
		minutes += int(carry)
		seconds -= 60 * carry
	}
	if minutes >= 60 {
		hours += minutes / 60
		minutes %= 60
	}

	return Timestamp{Hours: hours, Minutes: minutes, Seconds: seconds}
}

// rounds to microseconds, the precision kept for every offset and length
func RoundSeconds(seconds float64) float64 {
	return math.Round(seconds*secondsPrecision) / secondsPrecision
}

// offset from the start of the source in seconds
func (t Timestamp) TotalSeconds() float64 {
	return float64(t.Hours)*3600 + float64(t.Minutes)*60 + t.Seconds
}

// renders as "<h>h <m>m <s>s"
func (t Timestamp) String() string {
	return fmt.Sprintf("%dh %dm %ss", t.Hours, t.Minutes, FormatSeconds(t.Seconds))
}

// shortest decimal representation without exponent, as accepted by ffmpeg
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
