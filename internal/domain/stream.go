package domain

// Stream is a mulberry32 generator. Its whole state is one uint32, so the
// sequence repeats after 2^32 calls.
type Stream struct {
	state uint32
}

// NewStream returns a stream positioned at the start of the sequence for seed.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// StreamFor is shorthand for NewStream(SeedFromString(s)).
func StreamFor(s string) *Stream {
	return NewStream(SeedFromString(s))
}

// Uint32 advances the stream and returns the next raw value.
func (s *Stream) Uint32() uint32 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}

// Intn returns the next value in [0, n). It returns 0 when n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return intn(s, n)
}
