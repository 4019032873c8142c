// Package catalog loads the item catalog from embedded data or over HTTP.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// record is the wire shape of one catalog entry. Tag is free-form.
type record struct {
	Name string `json:"name"`
	Img  string `json:"img"`
	Tag  string `json:"tag"`
}

// Decode parses a JSON array of catalog records and normalises their tags.
func Decode(raw []byte) ([]domain.Item, error) {
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	items := make([]domain.Item, len(records))
	for i, r := range records {
		items[i] = domain.Item{
			Name:  r.Name,
			Image: r.Img,
			Tag:   domain.NormalizeTag(r.Tag),
		}
	}
	return items, nil
}
