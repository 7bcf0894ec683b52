// Package models defines the JSON summary produced for a loaded workbook.
package models

import (
	"fmt"
	"strings"
)

// Mode controls how much detail a summary carries.
type Mode string

const (
	// ModeLight summarises cells and table candidates only (no shapes or charts).
	ModeLight Mode = "light"
	// ModeStandard adds shapes with text, connectors, charts and images.
	ModeStandard Mode = "standard"
	// ModeVerbose adds every shape, object dimensions and cell hyperlinks.
	ModeVerbose Mode = "verbose"
)

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	case "":
		return ModeStandard, nil
	}
	return "", fmt.Errorf("unknown mode %q (want light, standard or verbose)", s)
}
