package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// Jitter is the cosmetic offset of a selection marker, in pixels and degrees.
type Jitter struct {
	TX  float64 `json:"tx"`
	TY  float64 `json:"ty"`
	Rot float64 `json:"rot"`
}

// MarkJitter returns the marker offset for cell idx of card. Offsets are
// derived from the card key and the index, so a marker keeps its position
// across reloads. Disabled jitter yields the zero offset.
func MarkJitter(card Card, idx int) Jitter {
	if !card.JitterEnabled {
		return Jitter{}
	}
	s := StreamFor(KeyFor(card.Identity()) + "#" + strconv.Itoa(idx))
	return Jitter{
		TX:  s.Float64()*10 - 5,
		TY:  s.Float64()*10 - 5,
		Rot: s.Float64()*14 - 7,
	}
}

// ModeLabel is the human label used when sharing a card.
func ModeLabel(m Mode) string {
	switch m {
	case ModeExcludeSpecial:
		return "No Grizzco weapons"
	case ModeSpecialOnly:
		return "Grizzco weapons only"
	default:
		return "Grizzco weapons included"
	}
}

// ShareText is the message posted when a card is shared.
func ShareText(card Card) string {
	return fmt.Sprintf("Salmon Run BINGO created! Size: %d×%d / Setting: %s", card.Size, card.Size, ModeLabel(card.Mode))
}

const tweetIntentURL = "https://twitter.com/intent/tweet"

// ShareIntentURL builds a tweet intent for card. pageURL and via are optional.
func ShareIntentURL(card Card, pageURL, via string) string {
	q := url.Values{}
	q.Set("text", ShareText(card))
	if pageURL != "" {
		q.Set("url", pageURL)
	}
	if via != "" {
		q.Set("via", via)
	}
	return tweetIntentURL + "?" + q.Encode()
}
