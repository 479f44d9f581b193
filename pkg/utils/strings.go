package utils

import (
	"strconv"
)

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseIntInRange parses a positive query parameter. Values below 1 fall
// back to defaultVal and values above maxVal are clamped.
func ParseIntInRange(s string, defaultVal, maxVal int) int {
	val := ParseInt(s, defaultVal)
	if val < 1 {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return maxVal
	}
	return val
}
