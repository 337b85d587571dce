// Package dto shapes models into API responses at three levels of detail.
// Each level embeds the one below it, so full ⊇ extended ⊇ basic.
package dto

import "strings"

// Level selects how much of an entity is rendered.
type Level int

const (
	// Basic renders the id and primary label only.
	Basic Level = iota
	// Extended adds every scalar field, timestamps and basic references.
	Extended
	// Full adds nested collections at the extended level.
	Full
)

// ParseLevel reads a level name, returning fallback for anything else.
func ParseLevel(s string, fallback Level) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return Basic
	case "extended":
		return Extended
	case "full":
		return Full
	default:
		return fallback
	}
}

// Map converts every item with fn.
func Map[M, D any](items []M, fn func(M) D) []D {
	out := make([]D, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
