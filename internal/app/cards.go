package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
	"github.com/nunja524/Salmonrun-BINGO/internal/ports"
)

const tracerName = "github.com/nunja524/Salmonrun-BINGO/internal/app"

// GenerateRequest is the application-level input (no HTTP types).
type GenerateRequest struct {
	Identity domain.Identity
	Options  domain.Options
}

// CardState is a card together with its completed lines.
type CardState struct {
	Card  domain.Card
	Lines []domain.Line
}

// GenerateResponse is the application-level output of Generate.
type GenerateResponse struct {
	CardState
	Policy  domain.Policy
	Warning string
	// Persisted is false when the card could not be written; it is still valid.
	Persisted bool
}

// ShareResponse carries the text and intent URL for sharing a card.
type ShareResponse struct {
	Text      string
	IntentURL string
}

// CardService orchestrates card generation, selection and persistence.
type CardService struct {
	catalog         ports.Catalog
	store           *CardStore
	logger          *slog.Logger
	centerDuplicate bool
	tracer          trace.Tracer

	// locks serializes read-modify-write cycles per card key.
	mu    sync.Mutex
	locks map[string]*cardLock
}

type cardLock struct {
	mu   sync.Mutex
	refs int
}

// NewCardService wires the service. centerDuplicate enables
// domain.ForceCenterDuplicate on capped boards.
func NewCardService(catalog ports.Catalog, store *CardStore, logger *slog.Logger, centerDuplicate bool) *CardService {
	return &CardService{
		catalog:         catalog,
		store:           store,
		logger:          logger,
		centerDuplicate: centerDuplicate,
		tracer:          otel.Tracer(tracerName),
		locks:           make(map[string]*cardLock),
	}
}

// lock holds the card key of id until the returned func is called.
func (s *CardService) lock(id domain.Identity) func() {
	key := domain.KeyFor(id)
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &cardLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// Generate builds the card for req, stores it and makes it the latest card.
func (s *CardService) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	ctx, span := s.startSpan(ctx, "CardService.Generate", req.Identity)
	defer span.End()

	items, err := s.catalog.Items(ctx)
	if err != nil {
		return GenerateResponse{}, s.fail(span, fmt.Errorf("load catalog: %w", err))
	}

	card, draw, err := domain.GenerateCard(items, req.Identity, domain.GenerateOptions{
		Options:         req.Options,
		CenterDuplicate: s.centerDuplicate,
	})
	if err != nil {
		return GenerateResponse{}, s.fail(span, fmt.Errorf("generate card: %w", err))
	}
	if draw.Degraded() {
		s.logger.WarnContext(ctx, "sampler fell back",
			"key", domain.KeyFor(req.Identity),
			"requested", draw.Requested,
			"applied", draw.Applied,
			"warning", draw.Warning,
		)
	}
	span.SetAttributes(attribute.String("card.policy", string(draw.Applied)))

	unlock := s.lock(req.Identity)
	persisted := s.store.Save(ctx, card) == nil
	unlock()

	return GenerateResponse{
		CardState: stateOf(card),
		Policy:    draw.Applied,
		Warning:   draw.Warning,
		Persisted: persisted,
	}, nil
}

// Toggle flips the selection of cell idx on the card named by id.
func (s *CardService) Toggle(ctx context.Context, id domain.Identity, idx int) (CardState, error) {
	ctx, span := s.startSpan(ctx, "CardService.Toggle", id)
	defer span.End()
	span.SetAttributes(attribute.Int("card.cell", idx))

	defer s.lock(id)()
	card, err := s.load(ctx, id)
	if err != nil {
		return CardState{}, s.fail(span, err)
	}
	card, err = domain.Toggle(card, idx)
	if err != nil {
		return CardState{}, s.fail(span, err)
	}
	if err := s.store.SaveDeferred(card); err != nil {
		return CardState{}, s.fail(span, err)
	}
	return stateOf(card), nil
}

// Reset empties the grid of the card named by id, keeping its options.
func (s *CardService) Reset(ctx context.Context, id domain.Identity) (CardState, error) {
	ctx, span := s.startSpan(ctx, "CardService.Reset", id)
	defer span.End()

	defer s.lock(id)()
	card, err := s.load(ctx, id)
	if err != nil {
		return CardState{}, s.fail(span, err)
	}
	empty, err := domain.EmptyBoard(id, domain.Options{
		MarkerStyle:   card.MarkerStyle,
		JitterEnabled: card.JitterEnabled,
		ShowLines:     card.ShowLines,
	})
	if err != nil {
		return CardState{}, s.fail(span, err)
	}
	if err := s.store.SaveDeferred(empty); err != nil {
		return CardState{}, s.fail(span, err)
	}
	return stateOf(empty), nil
}

// Restore loads the card named by id and makes it the latest card. A pointer
// the medium rejects still takes effect for this process.
func (s *CardService) Restore(ctx context.Context, id domain.Identity) (CardState, error) {
	ctx, span := s.startSpan(ctx, "CardService.Restore", id)
	defer span.End()

	card, err := s.load(ctx, id)
	if err != nil {
		return CardState{}, s.fail(span, err)
	}
	if err := s.store.PointLatest(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "latest pointer not persisted", "key", domain.KeyFor(id), "error", err)
		span.RecordError(err)
	}
	return stateOf(card), nil
}

// Latest returns the most recently generated or restored card.
func (s *CardService) Latest(ctx context.Context) (CardState, error) {
	card, ok := s.store.LoadLatest(ctx)
	if !ok {
		return CardState{}, domain.ErrCardNotFound
	}
	return stateOf(card), nil
}

// Share builds the share message for the card named by id.
func (s *CardService) Share(ctx context.Context, id domain.Identity, pageURL string) (ShareResponse, error) {
	card, err := s.load(ctx, id)
	if err != nil {
		return ShareResponse{}, err
	}
	return ShareResponse{
		Text:      domain.ShareText(card),
		IntentURL: domain.ShareIntentURL(card, pageURL, ""),
	}, nil
}

func (s *CardService) load(ctx context.Context, id domain.Identity) (domain.Card, error) {
	if err := id.Validate(); err != nil {
		return domain.Card{}, err
	}
	card, ok := s.store.LoadByIdentity(ctx, id)
	if !ok {
		return domain.Card{}, fmt.Errorf("%s: %w", domain.KeyFor(id), domain.ErrCardNotFound)
	}
	return card, nil
}

func (s *CardService) startSpan(ctx context.Context, name string, id domain.Identity) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("card.seed", id.Seed),
		attribute.Int("card.size", id.Size),
		attribute.String("card.mode", string(id.Mode)),
		attribute.Bool("card.free", id.FreeCell),
	))
}

func (s *CardService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func stateOf(card domain.Card) CardState {
	return CardState{
		Card:  card,
		Lines: domain.CompletedLines(card.Board, card.Size),
	}
}
