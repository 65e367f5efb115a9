package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts plain minutes ("90") or a Go duration ("1h30m").
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 0 {
			return 0, durationError(input)
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil || duration < 0 {
		return 0, durationError(input)
	}
	return duration, nil
}

func durationError(input string) error {
	return fmt.Errorf("Invalid duration format: %q\n\nValid formats:\n"+
		"• Minutes: 90\n"+
		"• Duration: 1h30m, 45m, 2h", input)
}
