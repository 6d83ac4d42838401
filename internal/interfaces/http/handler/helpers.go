package handler

import (
	"errors"
	"strconv"
)

// parsePositiveInt parses a positive integer query value, capped at max
func parsePositiveInt(raw string, max int) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, errors.New("value must be positive")
	}
	if value > max {
		return max, nil
	}
	return value, nil
}
