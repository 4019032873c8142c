package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// mapKV is an in-memory KeyValueStore that can be told to fail.
type mapKV struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	failGet bool
	failSet bool
	// getDelay widens the window between a read and the write that follows.
	getDelay time.Duration
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getDelay > 0 {
		time.Sleep(m.getDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errors.New("storage unavailable")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("quota exceeded")
	}
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mapKV) setFailSet(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = fail
}

func (m *mapKV) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *mapKV) raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

type mockCatalog struct {
	items []domain.Item
	err   error
}

func (m *mockCatalog) Items(_ context.Context) ([]domain.Item, error) {
	return m.items, m.err
}

func testCatalog() []domain.Item {
	items := make([]domain.Item, 0, 64)
	for i := range 60 {
		items = append(items, domain.Item{Name: fmt.Sprintf("Weapon %02d", i), Image: fmt.Sprintf("images/%02d.png", i), Tag: domain.TagNormal})
	}
	for i := range 4 {
		items = append(items, domain.Item{Name: fmt.Sprintf("Grizzco %d", i), Tag: domain.TagSpecial})
	}
	return items
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
