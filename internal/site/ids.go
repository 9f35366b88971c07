package site

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"

	"lukechampine.com/blake3"
)

// IDs hands out element IDs ("map_3f2a...") from a seeded generator, so that
// a build with the same seed renders byte-identical pages.
type IDs struct {
	rng *rand.Rand
}

// NewIDs returns an ID generator seeded from the BLAKE3 digest of seed.
func NewIDs(seed string) *IDs {
	sum := blake3.Sum256([]byte(seed))

	return &IDs{
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(sum[0:8]),
			binary.LittleEndian.Uint64(sum[8:16]),
		)),
	}
}

// Next returns prefix followed by an underscore and 32 random hex digits.
func (ids *IDs) Next(prefix string) string {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[0:8], ids.rng.Uint64())
	binary.LittleEndian.PutUint64(buf[8:16], ids.rng.Uint64())

	return prefix + "_" + hex.EncodeToString(buf[:])
}
