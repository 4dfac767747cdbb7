package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize parses a canvas size written as WIDTHxHEIGHT, for example
// "80x24". Both dimensions must be positive integers.
func ParseSize(s string) (width, height int, err error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	parts := strings.SplitN(trimmed, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q is not in WIDTHxHEIGHT form", s)
	}

	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q has an invalid width", s)
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q has an invalid height", s)
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("size %q must be at least 1x1", s)
	}
	return width, height, nil
}
