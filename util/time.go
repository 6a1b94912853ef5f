package util

import (
	"fmt"
	"strconv"
	"strings"
)

const secondsPerDay = 24 * 60 * 60

// SecondsToString formats a second count as HH:MM:SS, wrapping past a day.
func SecondsToString(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	seconds %= secondsPerDay

	return fmt.Sprintf(
		"%02d:%02d:%02d",
		seconds/3600,
		seconds%3600/60,
		seconds%60,
	)
}

// HMSToSeconds parses "HH:MM:SS", "MM:SS" or "SS" into seconds.
func HMSToSeconds(hms string) (int, error) {
	hms = strings.TrimSpace(hms)
	if hms == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(hms, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", hms)
	}

	var total int
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", hms)
		}

		total = total*60 + n
	}

	return total, nil
}
