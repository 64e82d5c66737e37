package engine

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// NewRand returns a deterministic ChaCha12 generator. Equal seeds yield equal
// streams, which makes engine choices reproducible. An RNG is not safe for
// concurrent use; searches only touch it after their workers have joined.
func NewRand(seed uint64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, 1024, 12)
}
