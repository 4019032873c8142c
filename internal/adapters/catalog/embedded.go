package catalog

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

//go:embed data/items.json
var dataFS embed.FS

const embeddedFile = "data/items.json"

// EmbeddedCatalog serves the catalog compiled into the binary.
type EmbeddedCatalog struct {
	once  sync.Once
	items []domain.Item
	err   error
}

func NewEmbeddedCatalog() *EmbeddedCatalog {
	return &EmbeddedCatalog{}
}

func (c *EmbeddedCatalog) init() {
	raw, err := dataFS.ReadFile(embeddedFile)
	if err != nil {
		c.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	c.items, c.err = Decode(raw)
}

func (c *EmbeddedCatalog) Items(_ context.Context) ([]domain.Item, error) {
	c.once.Do(c.init)
	if c.err != nil {
		return nil, c.err
	}
	return c.items, nil
}
