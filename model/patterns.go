package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a set of live cells relative to a top-left origin
type Pattern []Cell

var patterns = map[string]Pattern{
	// horizontal blinker, period 2
	"blinker": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	"glider":  {{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	"block":   {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	"toad":    {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
}

// LookupPattern returns the named pattern
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, errors.Errorf("[LookupPattern] unknown pattern: %q", name)
	}
	return p, nil
}

// PatternNames lists the known pattern names, sorted
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
