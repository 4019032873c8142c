package domain

import "fmt"

// GenerateOptions tunes GenerateCard beyond the card identity.
type GenerateOptions struct {
	Options
	// CenterDuplicate applies ForceCenterDuplicate to capped boards.
	CenterDuplicate bool
}

// GenerateCard builds the card named by id from catalog.
//
// # Determinism
//
// The only source of randomness is a Stream seeded with SeedFromString(id.Seed).
// Given the same id and the same catalog (including order), GenerateCard
// always returns the same board.
//
// # Errors
//
//   - id must pass Validate.
//   - ErrEmptyPool is returned when no catalog item is eligible for id.Mode.
//
// A sampler fallback is not an error; it is reported in the returned Draw.
func GenerateCard(catalog []Item, id Identity, opts GenerateOptions) (Card, Draw, error) {
	if err := id.Validate(); err != nil {
		return Card{}, Draw{}, err
	}

	pool := FilterPool(catalog, id.Mode)
	if len(pool) == 0 {
		return Card{}, Draw{}, fmt.Errorf("mode %s: %w", id.Mode, ErrEmptyPool)
	}

	count := id.Size * id.Size
	rng := NewStream(SeedFromString(id.Seed))
	policy := ChoosePolicy(id.Mode, len(pool), count)
	draw, err := Sample(policy, pool, count, DefaultCap, rng)
	if err != nil {
		return Card{}, Draw{}, err
	}

	card, err := AssembleBoard(id, opts.Options, draw.Items)
	if err != nil {
		return Card{}, Draw{}, err
	}
	if opts.CenterDuplicate && draw.Applied == PolicyCapped {
		card = ForceCenterDuplicate(card)
	}
	return card, draw, nil
}
