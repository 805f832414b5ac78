package migrate

import (
	"fmt"
	"strings"
)

// Mode selects how incoming values combine with an existing annotation.
type Mode string

const (
	// ModeAdd sums play counts and keeps the existing rating unless the
	// incoming one is set. Safe for first runs, inflates on replays.
	ModeAdd Mode = "add"
	// ModeReplace overwrites play count and rating with incoming values.
	ModeReplace Mode = "replace"
)

var allModes = []Mode{ModeAdd, ModeReplace}

// ParseMode validates a mode name from config or flags.
func ParseMode(raw string) (Mode, error) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, mode := range allModes {
		if candidate == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (valid: add, replace)", raw)
}
