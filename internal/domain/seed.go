package domain

import "hash/fnv"

// EmptySeedHash is what SeedFromString returns for the empty string: the
// FNV-1a 32-bit offset basis.
const EmptySeedHash uint32 = 2166136261

// SeedFromString derives a 32-bit seed from s with FNV-1a over its UTF-8 bytes.
func SeedFromString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
