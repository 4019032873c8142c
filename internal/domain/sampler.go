package domain

import "fmt"

// DefaultCap bounds how often one item may repeat under PolicyCapped.
const DefaultCap = 2

// Policy names a duplication policy.
type Policy string

const (
	PolicyNoDuplicate Policy = "no-duplicate"
	PolicyReplacement Policy = "replacement"
	PolicyCapped      Policy = "capped"
)

// Draw is the outcome of a sampler call. Applied differs from Requested when
// the sampler had to loosen its policy; Warning then says why.
type Draw struct {
	Items     []Item
	Requested Policy
	Applied   Policy
	Warning   string
}

// Degraded reports whether the sampler fell back to a looser policy.
func (d Draw) Degraded() bool {
	return d.Applied != d.Requested
}

// ChoosePolicy picks the sampler for a card needing count items from a pool of
// poolLen. Special-only pools are small, so they always repeat freely.
func ChoosePolicy(mode Mode, poolLen, count int) Policy {
	switch {
	case mode == ModeSpecialOnly:
		return PolicyReplacement
	case poolLen >= count:
		return PolicyNoDuplicate
	default:
		return PolicyCapped
	}
}

// Sample dispatches to the sampler for policy. maxRepeat is only used by
// PolicyCapped.
func Sample(policy Policy, pool []Item, count, maxRepeat int, rng RNG) (Draw, error) {
	switch policy {
	case PolicyNoDuplicate:
		return SampleNoDuplicate(pool, count, rng)
	case PolicyCapped:
		return SampleCapped(pool, count, maxRepeat, rng)
	default:
		return SampleWithReplacement(pool, count, rng)
	}
}

// SampleNoDuplicate returns count distinct items from a seeded Fisher-Yates
// shuffle of pool. When the pool is too small it draws with replacement
// instead and reports the fallback in Draw.Warning.
func SampleNoDuplicate(pool []Item, count int, rng RNG) (Draw, error) {
	if count < 0 {
		return Draw{}, fmt.Errorf("sample %d: %w", count, ErrNegativeCount)
	}
	if len(pool) < count {
		d, err := SampleWithReplacement(pool, count, rng)
		if err != nil {
			return Draw{}, err
		}
		d.Requested = PolicyNoDuplicate
		d.Warning = fmt.Sprintf("pool has %d items, need %d distinct: drawing with replacement", len(pool), count)
		return d, nil
	}

	shuffled := shuffle(pool, rng)
	return Draw{
		Items:     shuffled[:count],
		Requested: PolicyNoDuplicate,
		Applied:   PolicyNoDuplicate,
	}, nil
}

// SampleWithReplacement draws count items independently from pool.
func SampleWithReplacement(pool []Item, count int, rng RNG) (Draw, error) {
	if count < 0 {
		return Draw{}, fmt.Errorf("sample %d: %w", count, ErrNegativeCount)
	}
	if len(pool) == 0 {
		return Draw{}, ErrEmptyPool
	}
	out := make([]Item, count)
	for i := range out {
		out[i] = pool[intn(rng, len(pool))]
	}
	return Draw{
		Items:     out,
		Requested: PolicyReplacement,
		Applied:   PolicyReplacement,
	}, nil
}

// SampleCapped draws count items so that no item name appears more than
// maxRepeat times. The pool is shuffled once and then walked round-robin,
// skipping names that reached the cap, which spreads repeats evenly.
//
// Capacity is counted over distinct names, which equals len(pool) for a
// catalog without repeated names. If capacity*maxRepeat < count the cap
// cannot be met and is waived entirely: the result comes from
// SampleWithReplacement and may repeat any item any number of times.
// Draw.Warning records this.
func SampleCapped(pool []Item, count, maxRepeat int, rng RNG) (Draw, error) {
	if count < 0 {
		return Draw{}, fmt.Errorf("sample %d: %w", count, ErrNegativeCount)
	}
	if len(pool) == 0 {
		return Draw{}, ErrEmptyPool
	}
	if maxRepeat < 1 || distinctNames(pool)*maxRepeat < count {
		d, err := SampleWithReplacement(pool, count, rng)
		if err != nil {
			return Draw{}, err
		}
		d.Requested = PolicyCapped
		d.Warning = fmt.Sprintf("cap %d infeasible for %d items from %d: cap waived", maxRepeat, count, len(pool))
		return d, nil
	}

	shuffled := shuffle(pool, rng)
	used := make(map[string]int, len(shuffled))
	out := make([]Item, 0, count)
	for i := 0; len(out) < count; i = (i + 1) % len(shuffled) {
		it := shuffled[i]
		if used[it.Name] >= maxRepeat {
			continue
		}
		used[it.Name]++
		out = append(out, it)
	}
	return Draw{
		Items:     out,
		Requested: PolicyCapped,
		Applied:   PolicyCapped,
	}, nil
}

func distinctNames(items []Item) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it.Name] = struct{}{}
	}
	return len(seen)
}

// shuffle returns a Fisher-Yates shuffled copy of items.
func shuffle(items []Item, rng RNG) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(rng, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
