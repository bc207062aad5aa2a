package textutil

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// DurationMinutes decodes a compact duration such as "PT2H10M" into whole
// minutes. Thirty seconds or more round up one minute. Empty or malformed
// input yields zero.
func DurationMinutes(value string) int {
	match := durationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0
	}
	hours, ok := atoiPart(match[1])
	if !ok {
		return 0
	}
	minutes, ok := atoiPart(match[2])
	if !ok {
		return 0
	}
	seconds, ok := atoiPart(match[3])
	if !ok {
		return 0
	}
	total := hours*60 + minutes
	if seconds >= 30 {
		total++
	}
	return total
}

func atoiPart(part string) (int, bool) {
	if part == "" {
		return 0, true
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return n, true
}
