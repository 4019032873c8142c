package http

import "github.com/nunja524/Salmonrun-BINGO/internal/domain"

// CardResponse is the JSON shape returned by the /v1/cards endpoints.
type CardResponse struct {
	Key             string         `json:"key"`
	Seed            string         `json:"seed"`
	Size            int            `json:"size"`
	Mode            domain.Mode    `json:"mode"`
	MarkerStyle     string         `json:"marker_style"`
	JitterEnabled   bool           `json:"jitter_enabled"`
	ShowLines       bool           `json:"show_lines"`
	FreeCellEnabled bool           `json:"free_cell_enabled"`
	FreeIndex       int            `json:"free_index"`
	Cells           []CellResponse `json:"cells"`
	Lines           []domain.Line  `json:"lines"`
	Meta            *MetaResp      `json:"meta,omitempty"`
}

type CellResponse struct {
	Index    int            `json:"index"`
	Name     string         `json:"name,omitempty"`
	Image    string         `json:"img,omitempty"`
	Tag      domain.Tag     `json:"tag,omitempty"`
	Empty    bool           `json:"empty"`
	Selected bool           `json:"selected"`
	Free     bool           `json:"free"`
	Mark     *domain.Jitter `json:"mark,omitempty"`
}

type MetaResp struct {
	Policy    domain.Policy `json:"policy"`
	Warning   string        `json:"warning,omitempty"`
	Persisted bool          `json:"persisted"`
	RequestID string        `json:"request_id"`
}

type ShareResp struct {
	Text      string `json:"text"`
	IntentURL string `json:"intent_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
