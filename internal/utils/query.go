package utils

import (
	"fmt"
	"strconv"
	"strings"

	errs "desdemona/internal/errors"
)

// ParseIntelligence reads an intelligence query value, falling back when the
// value is empty.
func ParseIntelligence(text string, fallback int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid intelligence %q: %w", text, errs.ErrParse)
	}
	return n, nil
}
