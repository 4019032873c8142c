package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
	"github.com/nunja524/Salmonrun-BINGO/internal/ports"
)

// CardStore keeps card snapshots in a key-value medium, keyed by
// domain.KeyFor, together with the latest-card pointer.
//
// The medium may fail at any time. Failures are logged and reported wrapped in
// domain.ErrPersistenceUnavailable. A value whose write failed is kept in
// memory and served to reads until a later write of the same key succeeds, so
// the process keeps working on cards the medium never received.
// Stored data that cannot be decoded, or that does not describe a well-formed
// card for the requested identity, is treated as absent.
type CardStore struct {
	kv     ports.KeyValueStore
	writes *Coalescer
	logger *slog.Logger

	mu      sync.Mutex
	seq     uint64
	writing map[string]uint64
	unsaved map[string]string
}

// NewCardStore wires a store over kv. Deferred saves are coalesced with
// the given frame delay.
func NewCardStore(kv ports.KeyValueStore, frameDelay time.Duration, logger *slog.Logger) *CardStore {
	s := &CardStore{
		kv:      kv,
		logger:  logger,
		writing: make(map[string]uint64),
		unsaved: make(map[string]string),
	}
	s.writes = NewCoalescer(frameDelay, s.writeIfChanged, logger)
	return s
}

// Save writes card under its identity key and points the latest pointer at it.
// Saving a snapshot identical to the stored one does not rewrite it.
func (s *CardStore) Save(ctx context.Context, card domain.Card) error {
	key, payload, err := encodeCard(card)
	if err != nil {
		return err
	}
	s.writes.Cancel(key)
	s.writes.Cancel(domain.LatestKey)
	return errors.Join(
		s.writeIfChanged(ctx, key, payload),
		s.writeIfChanged(ctx, domain.LatestKey, key),
	)
}

// SaveDeferred schedules a Save for the next frame. A later SaveDeferred of
// the same identity before then supersedes this one.
func (s *CardStore) SaveDeferred(card domain.Card) error {
	key, payload, err := encodeCard(card)
	if err != nil {
		return err
	}
	s.writes.Schedule(key, payload)
	s.writes.Schedule(domain.LatestKey, key)
	return nil
}

// Flush writes deferred saves now and retries values the medium rejected.
func (s *CardStore) Flush(ctx context.Context) error {
	return errors.Join(s.writes.Flush(ctx), s.retryUnsaved(ctx))
}

// Close flushes like Flush; later deferred saves are written immediately.
func (s *CardStore) Close(ctx context.Context) error {
	return errors.Join(s.writes.Stop(ctx), s.retryUnsaved(ctx))
}

func (s *CardStore) retryUnsaved(ctx context.Context) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.unsaved))
	for key := range s.unsaved {
		keys = append(keys, key)
	}
	s.mu.Unlock()
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		// Skip keys rewritten or in flight since the snapshot.
		s.mu.Lock()
		value, ok := s.unsaved[key]
		_, busy := s.writing[key]
		s.mu.Unlock()
		if !ok || busy {
			continue
		}
		if err := s.writeIfChanged(ctx, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PointLatest sets the latest pointer to id without rewriting the card.
func (s *CardStore) PointLatest(ctx context.Context, id domain.Identity) error {
	s.writes.Cancel(domain.LatestKey)
	return s.writeIfChanged(ctx, domain.LatestKey, domain.KeyFor(id))
}

// LoadByIdentity returns the card stored for id.
func (s *CardStore) LoadByIdentity(ctx context.Context, id domain.Identity) (domain.Card, bool) {
	return s.loadKey(ctx, domain.KeyFor(id), &id)
}

// LoadLatest returns the card named by the latest pointer.
func (s *CardStore) LoadLatest(ctx context.Context) (domain.Card, bool) {
	key, ok := s.read(ctx, domain.LatestKey)
	if !ok {
		return domain.Card{}, false
	}
	if !domain.IsCardKey(key) {
		s.logger.WarnContext(ctx, "ignoring corrupt latest pointer", "value", key)
		return domain.Card{}, false
	}
	return s.loadKey(ctx, key, nil)
}

func (s *CardStore) loadKey(ctx context.Context, key string, want *domain.Identity) (domain.Card, bool) {
	raw, ok := s.read(ctx, key)
	if !ok {
		return domain.Card{}, false
	}
	card, err := decodeCard(raw)
	if err == nil && domain.KeyFor(card.Identity()) != key {
		err = fmt.Errorf("stored identity %s does not match key", domain.KeyFor(card.Identity()))
	}
	if err == nil && want != nil && card.Identity() != *want {
		err = fmt.Errorf("stored identity %+v does not match %+v", card.Identity(), *want)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "ignoring corrupt card snapshot", "key", key, "error", err)
		return domain.Card{}, false
	}
	return card, true
}

// read prefers a deferred value, then a value the medium rejected, over the
// medium itself so reads follow writes.
func (s *CardStore) read(ctx context.Context, key string) (string, bool) {
	if v, ok := s.writes.Pending(key); ok {
		return v, true
	}
	s.mu.Lock()
	v, ok := s.unsaved[key]
	s.mu.Unlock()
	if ok {
		return v, true
	}
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "persistence read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// writeIfChanged writes value under key and records the outcome. Only the most
// recently started write of a key may update the unsaved set.
func (s *CardStore) writeIfChanged(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.writing[key] = seq
	s.mu.Unlock()

	err := s.put(ctx, key, value)

	s.mu.Lock()
	if s.writing[key] == seq {
		delete(s.writing, key)
		if err != nil {
			s.unsaved[key] = value
		} else {
			delete(s.unsaved, key)
		}
	}
	s.mu.Unlock()
	return err
}

func (s *CardStore) put(ctx context.Context, key, value string) error {
	current, ok, err := s.kv.Get(ctx, key)
	if err == nil && ok && current == value {
		return nil
	}
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.WarnContext(ctx, "persistence write failed", "key", key, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}

func encodeCard(card domain.Card) (string, string, error) {
	if err := card.Identity().Validate(); err != nil {
		return "", "", fmt.Errorf("encode card: %w", err)
	}
	if len(card.Board) != card.Size*card.Size {
		return "", "", fmt.Errorf("encode card: board has %d cells for size %d", len(card.Board), card.Size)
	}
	payload, err := json.Marshal(card)
	if err != nil {
		return "", "", fmt.Errorf("marshal card: %w", err)
	}
	return domain.KeyFor(card.Identity()), string(payload), nil
}

func decodeCard(raw string) (domain.Card, error) {
	var card domain.Card
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		return domain.Card{}, fmt.Errorf("unmarshal card: %w", err)
	}
	if err := card.Identity().Validate(); err != nil {
		return domain.Card{}, err
	}
	if len(card.Board) != card.Size*card.Size {
		return domain.Card{}, fmt.Errorf("board has %d cells for size %d", len(card.Board), card.Size)
	}
	if card.FreeIndex != domain.FreeIndexFor(card.Size, card.FreeCellEnabled) {
		return domain.Card{}, fmt.Errorf("free index %d invalid for size %d", card.FreeIndex, card.Size)
	}
	return card, nil
}
