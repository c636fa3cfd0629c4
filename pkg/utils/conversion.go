package utils

import "strconv"

// StringToUint64 parses numeric IDs from URL parameters.
// Returns 0 when the value is not a number.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// StringToInt with a fallback, for ?page= and ?limit= query params.
func StringToInt(str string, fallback int) int {
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}
