package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	keyPrefix = "card:v1:"

	// NoSeedSentinel stands in for the empty seed in keys. url.QueryEscape
	// always escapes '@', so no real seed can produce it.
	NoSeedSentinel = "@none"

	// LatestKey is the reserved key holding the latest card's key.
	LatestKey = "card:latest"
)

// Identity names a persistable card slot.
type Identity struct {
	Seed     string
	Size     int
	Mode     Mode
	FreeCell bool
}

// Validate checks the size and mode of id.
func (id Identity) Validate() error {
	if !ValidSize(id.Size) {
		return fmt.Errorf("size %d: %w", id.Size, ErrInvalidSize)
	}
	if !id.Mode.Valid() {
		return fmt.Errorf("mode %q: %w", id.Mode, ErrInvalidMode)
	}
	return nil
}

// KeyFor returns the storage key for id.
func KeyFor(id Identity) string {
	seed := NoSeedSentinel
	if id.Seed != "" {
		seed = url.QueryEscape(id.Seed)
	}
	free := "0"
	if id.FreeCell {
		free = "1"
	}
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteString(seed)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(id.Size))
	b.WriteByte(':')
	b.WriteString(string(id.Mode))
	b.WriteByte(':')
	b.WriteString(free)
	return b.String()
}

// IsCardKey reports whether key was produced by KeyFor.
func IsCardKey(key string) bool {
	return strings.HasPrefix(key, keyPrefix)
}
