package domain_test

import (
	"fmt"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

// sequenceRNG returns values from a pre-set sequence, wrapping around.
type sequenceRNG struct {
	values []float64
	idx    int
}

func (r *sequenceRNG) Float64() float64 {
	v := r.values[r.idx%len(r.values)]
	r.idx++
	return v
}

func testPool(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range n {
		items[i] = domain.Item{
			Name:  fmt.Sprintf("Weapon %02d", i),
			Image: fmt.Sprintf("images/weapon_%02d.png", i),
			Tag:   domain.TagNormal,
		}
	}
	return items
}

func nameCounts(items []domain.Item) map[string]int {
	counts := make(map[string]int, len(items))
	for _, it := range items {
		counts[it.Name]++
	}
	return counts
}
