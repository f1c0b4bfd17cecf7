package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// ParseID parses a canonical entity ID. The AI sometimes quotes or pads the id
// it returns, so surrounding whitespace and quotes are tolerated; anything else
// is invalid.
func ParseID(s string) (uint, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
