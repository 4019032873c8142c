package domain

import "fmt"

// ValidSize reports whether size is an allowed grid dimension.
func ValidSize(size int) bool {
	return size >= MinSize && size <= MaxSize
}

// FreeIndexFor returns the centre index of an odd board when free is set,
// and -1 otherwise.
func FreeIndexFor(size int, free bool) int {
	if !free || size%2 == 0 {
		return -1
	}
	return (size / 2) * (size + 1)
}

// AssembleBoard builds a size*size card for id from items in sampling order.
// Every cell starts unselected; the free cell is only recorded in FreeIndex.
func AssembleBoard(id Identity, opts Options, items []Item) (Card, error) {
	if !ValidSize(id.Size) {
		return Card{}, ErrInvalidSize
	}
	if len(items) != id.Size*id.Size {
		return Card{}, fmt.Errorf("assemble board: got %d items for %dx%d", len(items), id.Size, id.Size)
	}
	board := make([]Cell, len(items))
	for i := range items {
		it := items[i]
		board[i] = Cell{Item: &it}
	}
	return newCard(id, opts, board), nil
}

// EmptyBoard returns a card for id whose cells hold no items.
func EmptyBoard(id Identity, opts Options) (Card, error) {
	if !ValidSize(id.Size) {
		return Card{}, ErrInvalidSize
	}
	return newCard(id, opts, make([]Cell, id.Size*id.Size)), nil
}

func newCard(id Identity, opts Options, board []Cell) Card {
	return Card{
		Seed:            id.Seed,
		Size:            id.Size,
		Mode:            id.Mode,
		MarkerStyle:     ParseMarkerStyle(string(opts.MarkerStyle)),
		JitterEnabled:   opts.JitterEnabled,
		ShowLines:       opts.ShowLines,
		FreeCellEnabled: id.FreeCell,
		FreeIndex:       FreeIndexFor(id.Size, id.FreeCell),
		Board:           board,
	}
}

// Toggle returns a copy of card with the selection of cell idx flipped.
func Toggle(card Card, idx int) (Card, error) {
	if idx < 0 || idx >= len(card.Board) {
		return Card{}, fmt.Errorf("toggle %d: %w", idx, ErrCellOutOfRange)
	}
	out := card
	out.Board = make([]Cell, len(card.Board))
	copy(out.Board, card.Board)
	out.Board[idx].Selected = !out.Board[idx].Selected
	return out, nil
}

// ForceCenterDuplicate moves a repeated item onto the free cell so that a
// capped board shows a duplicate in its centre. If the centre item already
// appears elsewhere nothing changes. Otherwise the centre swaps with the first
// cell whose item occurs more than once, or with cell 0 when nothing repeats.
// Selection state travels with the swapped cells.
func ForceCenterDuplicate(card Card) Card {
	center := card.FreeIndex
	if center < 0 || center >= len(card.Board) {
		return card
	}

	counts := make(map[string]int, len(card.Board))
	for _, c := range card.Board {
		if c.Item != nil {
			counts[c.Item.Name]++
		}
	}
	if it := card.Board[center].Item; it != nil && counts[it.Name] > 1 {
		return card
	}

	target := 0
	for i, c := range card.Board {
		if i != center && c.Item != nil && counts[c.Item.Name] > 1 {
			target = i
			break
		}
	}
	if target == center {
		return card
	}

	out := card
	out.Board = make([]Cell, len(card.Board))
	copy(out.Board, card.Board)
	out.Board[center], out.Board[target] = out.Board[target], out.Board[center]
	return out
}
