package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nunja524/Salmonrun-BINGO/internal/app"
	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

type Handler struct {
	svc      *app.CardService
	defaults app.Defaults
	pageURL  string
}

// NewHandler wires the card endpoints. pageURL is linked from share intents
// and may be empty.
func NewHandler(svc *app.CardService, defaults app.Defaults, pageURL string) *Handler {
	return &Handler{svc: svc, defaults: defaults, pageURL: pageURL}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/cards", h.Generate)
	e.GET("/v1/cards", h.Load)
	e.GET("/v1/cards/latest", h.Latest)
	e.POST("/v1/cards/cells/:index/toggle", h.Toggle)
	e.POST("/v1/cards/reset", h.Reset)
	e.GET("/v1/cards/share", h.Share)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Generate(c echo.Context) error {
	id, opts, _ := app.ParseParams(c.QueryParams(), h.defaults)
	resp, err := h.svc.Generate(c.Request().Context(), app.GenerateRequest{Identity: id, Options: opts})
	if err != nil {
		return mapError(c, err)
	}

	out := toResponse(resp.CardState)
	requestID, _ := c.Get(ctxRequestID).(string)
	out.Meta = &MetaResp{
		Policy:    resp.Policy,
		Warning:   resp.Warning,
		Persisted: resp.Persisted,
		RequestID: requestID,
	}
	return c.JSON(http.StatusCreated, out)
}

// Load restores the card named by the query, or the latest card when the
// query names none.
func (h *Handler) Load(c echo.Context) error {
	id, _, explicit := app.ParseParams(c.QueryParams(), h.defaults)
	if !explicit {
		return h.Latest(c)
	}
	state, err := h.svc.Restore(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(state))
}

func (h *Handler) Latest(c echo.Context) error {
	state, err := h.svc.Latest(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(state))
}

func (h *Handler) Toggle(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index must be an integer"})
	}
	id, _, _ := app.ParseParams(c.QueryParams(), h.defaults)
	state, err := h.svc.Toggle(c.Request().Context(), id, idx)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(state))
}

func (h *Handler) Reset(c echo.Context) error {
	id, _, _ := app.ParseParams(c.QueryParams(), h.defaults)
	state, err := h.svc.Reset(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(state))
}

func (h *Handler) Share(c echo.Context) error {
	id, _, _ := app.ParseParams(c.QueryParams(), h.defaults)
	resp, err := h.svc.Share(c.Request().Context(), id, h.pageURL)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ShareResp{Text: resp.Text, IntentURL: resp.IntentURL})
}

func toResponse(s app.CardState) CardResponse {
	card := s.Card
	cells := make([]CellResponse, len(card.Board))
	for i, cell := range card.Board {
		cr := CellResponse{
			Index:    i,
			Empty:    cell.Item == nil,
			Selected: cell.Selected,
			Free:     i == card.FreeIndex,
		}
		if cell.Item != nil {
			cr.Name = cell.Item.Name
			cr.Image = cell.Item.Image
			cr.Tag = cell.Item.Tag
		}
		if cell.Selected {
			mark := domain.MarkJitter(card, i)
			cr.Mark = &mark
		}
		cells[i] = cr
	}

	lines := []domain.Line{}
	if card.ShowLines && s.Lines != nil {
		lines = s.Lines
	}

	return CardResponse{
		Key:             domain.KeyFor(card.Identity()),
		Seed:            card.Seed,
		Size:            card.Size,
		Mode:            card.Mode,
		MarkerStyle:     string(card.MarkerStyle),
		JitterEnabled:   card.JitterEnabled,
		ShowLines:       card.ShowLines,
		FreeCellEnabled: card.FreeCellEnabled,
		FreeIndex:       card.FreeIndex,
		Cells:           cells,
		Lines:           lines,
	}
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get(ctxRequestID).(string)

	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSize), errors.Is(err, domain.ErrInvalidMode), errors.Is(err, domain.ErrCellOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyPool):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
