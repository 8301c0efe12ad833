package utils

import "strconv"

// ParseIntQuery parses an optional integer query value, falling back to
// defaultVal on empty or unparseable input.
func ParseIntQuery(val string, defaultVal int) int {
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
