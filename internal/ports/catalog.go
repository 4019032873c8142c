package ports

import (
	"context"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// Catalog provides the items cards are drawn from.
type Catalog interface {
	Items(ctx context.Context) ([]domain.Item, error)
}
