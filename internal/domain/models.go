package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Float64 returns the next value in [0, 1).
	Float64() float64
}

// intn maps the next RNG value onto [0, n).
func intn(rng RNG, n int) int {
	return int(rng.Float64() * float64(n))
}

// Tag classifies a catalog item.
type Tag string

const (
	TagNormal  Tag = "normal"
	TagSpecial Tag = "special"
)

// Mode selects which tags are eligible for a card.
type Mode string

const (
	ModeExcludeSpecial Mode = "exclude-special"
	ModeIncludeSpecial Mode = "include-special"
	ModeSpecialOnly    Mode = "special-only"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeExcludeSpecial, ModeIncludeSpecial, ModeSpecialOnly:
		return true
	}
	return false
}

// MarkerStyle is the cosmetic marker drawn on selected cells.
type MarkerStyle string

const (
	MarkerCircle MarkerStyle = "circle"
	MarkerFish   MarkerStyle = "fish"
)

// ParseMarkerStyle returns the style for raw, defaulting to MarkerCircle.
func ParseMarkerStyle(raw string) MarkerStyle {
	if MarkerStyle(raw) == MarkerFish {
		return MarkerFish
	}
	return MarkerCircle
}

const (
	MinSize = 3
	MaxSize = 9
)

// Item is a single catalog entry.
type Item struct {
	Name  string `json:"name"`
	Image string `json:"img"`
	Tag   Tag    `json:"tag"`
}

// Cell is one square of a card. A nil Item is an empty square.
type Cell struct {
	Item     *Item `json:"item,omitempty"`
	Selected bool  `json:"selected"`
}

// Card is a generated grid plus its configuration and selection state.
type Card struct {
	Seed            string      `json:"seed"`
	Size            int         `json:"size"`
	Mode            Mode        `json:"mode"`
	MarkerStyle     MarkerStyle `json:"markerStyle"`
	JitterEnabled   bool        `json:"jitterEnabled"`
	ShowLines       bool        `json:"showLines"`
	FreeCellEnabled bool        `json:"freeCellEnabled"`
	// FreeIndex is the cosmetic free cell, or -1.
	FreeIndex int    `json:"freeIndex"`
	Board     []Cell `json:"board"`
}

// Identity returns the persistence identity of c.
func (c Card) Identity() Identity {
	return Identity{
		Seed:     c.Seed,
		Size:     c.Size,
		Mode:     c.Mode,
		FreeCell: c.FreeCellEnabled,
	}
}

// Options holds the presentation settings stored alongside a card.
type Options struct {
	MarkerStyle   MarkerStyle
	JitterEnabled bool
	ShowLines     bool
}
