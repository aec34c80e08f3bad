package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a clock time is not an hh:mm:ss integer triplet.
var ErrInvalidTimeFormat = errors.New("invalid time format, use hh:mm:ss")

// maxClockSeconds bounds parsed fields and their sum so schedule arithmetic cannot overflow.
const maxClockSeconds = math.MaxInt32

// ParseClockTime converts an "hh:mm:ss" string into seconds since midnight.
// Field magnitudes are not range checked: "07:75:00" is 7*3600 + 75*60.
// Totals beyond about 68 years of seconds either way are rejected.
func ParseClockTime(text string) (int, error) {
	fields := strings.Split(text, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}

	var parts [3]int64
	for i, field := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil || v > maxClockSeconds || v < -maxClockSeconds {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
		}
		parts[i] = v
	}

	total := parts[0]*3600 + parts[1]*60 + parts[2]
	if total > maxClockSeconds || total < -maxClockSeconds {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	return int(total), nil
}

// FormatClockTime renders seconds since midnight as zero padded "hh:mm:ss".
// Hours are not wrapped, so 90000 becomes "25:00:00". Negative values floor towards the
// previous hour: -1 is "-1:59:59".
func FormatClockTime(seconds int) string {
	h := seconds / 3600
	if seconds%3600 < 0 {
		h--
	}
	rest := seconds - h*3600
	return fmt.Sprintf("%02d:%02d:%02d", h, rest/60, rest%60)
}
