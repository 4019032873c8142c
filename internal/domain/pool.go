package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// SpecialTagSynonyms lists the substrings that mark a raw catalog tag as
// special. Matching is case-insensitive.
var SpecialTagSynonyms = []string{
	"kuma",
	"クマ",
	"くま",
	"クマブキ",
	"special",
	"grizzco",
}

// NormalizeTag maps a free-form catalog tag onto TagNormal or TagSpecial.
func NormalizeTag(raw string) Tag {
	fold := cases.Fold()
	t := fold.String(raw)
	for _, syn := range SpecialTagSynonyms {
		if strings.Contains(t, fold.String(syn)) {
			return TagSpecial
		}
	}
	return TagNormal
}

// FilterPool returns the items eligible for mode, preserving catalog order.
// An unknown mode keeps every item.
func FilterPool(items []Item, mode Mode) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch mode {
		case ModeExcludeSpecial:
			if it.Tag != TagNormal {
				continue
			}
		case ModeSpecialOnly:
			if it.Tag != TagSpecial {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
