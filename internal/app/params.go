package app

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// Defaults are the values used for parameters a request leaves out.
type Defaults struct {
	Size        int
	Mode        domain.Mode
	FreeCell    bool
	MarkerStyle domain.MarkerStyle
	Jitter      bool
	ShowLines   bool
}

// identityParams are the query keys that name a card.
var identityParams = []string{"seed", "size", "mode", "free"}

// modeAliases accepts the legacy option values alongside the Mode names.
var modeAliases = map[string]domain.Mode{
	"exclude":   domain.ModeExcludeSpecial,
	"include":   domain.ModeIncludeSpecial,
	"kuma_only": domain.ModeSpecialOnly,
}

// ParseParams reads a card identity and presentation options from q.
// Missing or invalid values fall back to d. explicit reports whether q named
// any identity parameter at all.
func ParseParams(q url.Values, d Defaults) (id domain.Identity, opts domain.Options, explicit bool) {
	for _, k := range identityParams {
		if q.Has(k) {
			explicit = true
			break
		}
	}

	id = domain.Identity{
		Seed:     q.Get("seed"),
		Size:     d.Size,
		Mode:     d.Mode,
		FreeCell: d.FreeCell,
	}
	if n, err := strconv.Atoi(q.Get("size")); err == nil && domain.ValidSize(n) {
		id.Size = n
	}
	if m, ok := parseMode(q.Get("mode")); ok {
		id.Mode = m
	}
	if b, ok := parseFlag(q.Get("free")); ok {
		id.FreeCell = b
	}

	opts = domain.Options{
		MarkerStyle:   d.MarkerStyle,
		JitterEnabled: d.Jitter,
		ShowLines:     d.ShowLines,
	}
	if raw := q.Get("marker"); raw != "" {
		opts.MarkerStyle = domain.ParseMarkerStyle(raw)
	}
	if b, ok := parseFlag(q.Get("jitter")); ok {
		opts.JitterEnabled = b
	}
	if b, ok := parseFlag(q.Get("lines")); ok {
		opts.ShowLines = b
	}
	return id, opts, explicit
}

func parseMode(raw string) (domain.Mode, bool) {
	raw = strings.TrimSpace(raw)
	if m := domain.Mode(raw); m.Valid() {
		return m, true
	}
	m, ok := modeAliases[raw]
	return m, ok
}

func parseFlag(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on":
		return true, true
	case "0", "false", "off":
		return false, true
	}
	return false, false
}
