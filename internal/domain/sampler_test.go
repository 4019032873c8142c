package domain_test

import (
	"errors"
	"testing"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

func TestSampleNoDuplicate_Unique(t *testing.T) {
	pool := testPool(30)
	d, err := domain.SampleNoDuplicate(pool, 25, domain.NewStream(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Items) != 25 {
		t.Fatalf("expected 25 items, got %d", len(d.Items))
	}
	for name, n := range nameCounts(d.Items) {
		if n > 1 {
			t.Errorf("%s drawn %d times", name, n)
		}
	}
	if d.Degraded() || d.Warning != "" {
		t.Errorf("unexpected fallback: %+v", d)
	}
}

func TestSampleNoDuplicate_ZeroSwapsKeepsOrder(t *testing.T) {
	pool := testPool(5)
	// A value just below 1 always picks j == i, so no element moves.
	rng := &sequenceRNG{values: []float64{0.999999}}
	d, err := domain.SampleNoDuplicate(pool, 3, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, it := range d.Items {
		if it.Name != pool[i].Name {
			t.Errorf("item %d: expected %s, got %s", i, pool[i].Name, it.Name)
		}
	}
	if rng.idx != 4 {
		t.Errorf("expected 4 rng calls for 5 items, got %d", rng.idx)
	}
}

func TestSampleNoDuplicate_DegradesToReplacement(t *testing.T) {
	pool := testPool(4)
	d, err := domain.SampleNoDuplicate(pool, 10, domain.NewStream(99))
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if len(d.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(d.Items))
	}
	if !d.Degraded() {
		t.Error("expected fallback to be flagged")
	}
	if d.Requested != domain.PolicyNoDuplicate || d.Applied != domain.PolicyReplacement {
		t.Errorf("unexpected policies: requested %s applied %s", d.Requested, d.Applied)
	}
	if d.Warning == "" {
		t.Error("expected a warning")
	}
}

func TestSampleWithReplacement_Indexes(t *testing.T) {
	pool := testPool(4)
	rng := &sequenceRNG{values: []float64{0, 0.25, 0.5, 0.99}}
	d, err := domain.SampleWithReplacement(pool, 4, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, it := range d.Items {
		if it.Name != pool[i].Name {
			t.Errorf("draw %d: expected %s, got %s", i, pool[i].Name, it.Name)
		}
	}
}

func TestSampleWithReplacement_EmptyPool(t *testing.T) {
	_, err := domain.SampleWithReplacement(nil, 3, domain.NewStream(1))
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
	_, err = domain.SampleNoDuplicate(nil, 3, domain.NewStream(1))
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Errorf("no-duplicate: expected ErrEmptyPool, got %v", err)
	}
	_, err = domain.SampleCapped(nil, 3, 2, domain.NewStream(1))
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Errorf("capped: expected ErrEmptyPool, got %v", err)
	}
}

func TestSamplers_NegativeCount(t *testing.T) {
	pool := testPool(5)
	samplers := map[string]func() (domain.Draw, error){
		"no-duplicate": func() (domain.Draw, error) { return domain.SampleNoDuplicate(pool, -1, domain.NewStream(1)) },
		"replacement":  func() (domain.Draw, error) { return domain.SampleWithReplacement(pool, -1, domain.NewStream(1)) },
		"capped":       func() (domain.Draw, error) { return domain.SampleCapped(pool, -1, 2, domain.NewStream(1)) },
	}
	for name, sample := range samplers {
		t.Run(name, func(t *testing.T) {
			_, err := sample()
			if !errors.Is(err, domain.ErrNegativeCount) {
				t.Errorf("expected ErrNegativeCount, got %v", err)
			}
		})
	}
}

func TestSampleCapped_BoundHolds(t *testing.T) {
	rng := domain.StreamFor("cap-property")
	for poolLen := 1; poolLen <= 50; poolLen++ {
		pool := testPool(poolLen)
		for count := 1; count <= 81; count++ {
			if poolLen*domain.DefaultCap < count {
				continue
			}
			d, err := domain.SampleCapped(pool, count, domain.DefaultCap, rng)
			if err != nil {
				t.Fatalf("pool %d count %d: %v", poolLen, count, err)
			}
			if len(d.Items) != count {
				t.Fatalf("pool %d count %d: got %d items", poolLen, count, len(d.Items))
			}
			if d.Degraded() {
				t.Fatalf("pool %d count %d: unexpected fallback", poolLen, count)
			}
			for name, n := range nameCounts(d.Items) {
				if n > domain.DefaultCap {
					t.Fatalf("pool %d count %d: %s appears %d times", poolLen, count, name, n)
				}
			}
		}
	}
}

func TestSampleCapped_EvenDistribution(t *testing.T) {
	// 30 items, 45 draws: round-robin gives 15 items twice and 15 once.
	d, err := domain.SampleCapped(testPool(30), 45, 2, domain.NewStream(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := nameCounts(d.Items)
	if len(counts) != 30 {
		t.Errorf("expected all 30 items used, got %d", len(counts))
	}
}

func TestSampleCapped_InfeasibleWaivesCap(t *testing.T) {
	d, err := domain.SampleCapped(testPool(3), 25, 2, domain.NewStream(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Items) != 25 {
		t.Fatalf("expected 25 items, got %d", len(d.Items))
	}
	if d.Requested != domain.PolicyCapped || d.Applied != domain.PolicyReplacement {
		t.Errorf("unexpected policies: requested %s applied %s", d.Requested, d.Applied)
	}
	if d.Warning == "" {
		t.Error("expected a warning for a waived cap")
	}
}

func TestSampleCapped_RepeatedNamesInPool(t *testing.T) {
	pool := testPool(3)
	pool = append(pool, pool...)
	// 6 entries but only 3 names: capacity is 6, not 12.
	d, err := domain.SampleCapped(pool, 8, 2, domain.NewStream(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Degraded() {
		t.Error("expected fallback for 8 draws over 3 names")
	}
}

func TestChoosePolicy(t *testing.T) {
	cases := []struct {
		name    string
		mode    domain.Mode
		poolLen int
		count   int
		want    domain.Policy
	}{
		{"special only", domain.ModeSpecialOnly, 100, 9, domain.PolicyReplacement},
		{"enough items", domain.ModeIncludeSpecial, 70, 49, domain.PolicyNoDuplicate},
		{"large grid", domain.ModeExcludeSpecial, 60, 81, domain.PolicyCapped},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.ChoosePolicy(tc.mode, tc.poolLen, tc.count); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}
