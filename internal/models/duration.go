package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidDuration is returned for duration strings that are not in "m:ss" form.
var ErrInvalidDuration = errors.New("invalid duration")

var durationPattern = regexp.MustCompile(`^(\d+):([0-5]\d)$`)

// ParseDuration converts an "m:ss" string into seconds.
//
// "3:36" is 216. Seconds must be two digits below 60; anything else yields [ErrInvalidDuration].
func ParseDuration(s string) (int, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	mins, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	secs, _ := strconv.Atoi(m[2])
	return mins*60 + secs, nil
}

// FormatDuration renders seconds as "m:ss". Negative values render as "0:00".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TotalSeconds sums the durations of songs, skipping any that fail to parse.
func TotalSeconds(songs []Song) int {
	total := 0
	for _, s := range songs {
		if secs, err := ParseDuration(s.Duration); err == nil {
			total += secs
		}
	}
	return total
}

// TotalDuration renders the summed length of songs for a playlist header,
// e.g. "1 hr 12 min" or "39 min 50 sec".
func TotalDuration(songs []Song) string {
	total := TotalSeconds(songs)
	if total >= 3600 {
		return fmt.Sprintf("%d hr %d min", total/3600, (total%3600)/60)
	}
	return fmt.Sprintf("%d min %d sec", total/60, total%60)
}
