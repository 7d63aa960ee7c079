package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is the wall-clock format every time cell holds.
const Clock = "15:04"

// ParseClock converts an "HH:MM" cell value into minutes since
// midnight.
func ParseClock(v string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", v)
	}
	return h*60 + m, nil
}

// FormatDuration renders minutes as zero-padded "HH:MM".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationBetween subtracts two same-day "HH:MM" values, truncated to
// the minute.
func DurationBetween(checkIn, checkOut string) (string, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return "", err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return "", err
	}
	return FormatDuration(out - in), nil
}

// SumDurations adds up "HH:MM" duration values, skipping empty cells.
// This is the engine-side evaluation of a bucket total for backends
// that do not run live formulas.
func SumDurations(values []string) (string, error) {
	total := 0
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		mins, err := ParseClock(v)
		if err != nil {
			return "", err
		}
		total += mins
	}
	return FormatDuration(total), nil
}
