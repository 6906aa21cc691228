package vdb

import (
	"math/rand/v2"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// RandSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// NewRand returns a RandSource. A zero seed gives an unseeded source; any
// other seed gives a reproducible sequence.
func NewRand(seed uint64) RandSource {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateFileID draws FileIDSize alphanumeric characters from r and
// returns their cipher codes.
func GenerateFileID(t *cipher.Table, r RandSource) ([]byte, error) {
	if t == nil {
		t = cipher.Default()
	}
	id := make([]byte, FileIDSize)
	for i := range id {
		c, err := cipher.Alnum(r.IntN(cipher.AlphabetSize))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "random source out of range")
		}
		code, err := t.EncodeChar(c)
		if err != nil {
			return nil, err
		}
		id[i] = code
	}
	return id, nil
}

// RenderFileID decodes id for display. The cipher is not injective, so the
// result is one possible preimage.
func RenderFileID(t *cipher.Table, id []byte) string {
	if t == nil {
		t = cipher.Default()
	}
	out := make([]byte, len(id))
	for i, b := range id {
		c, ok := t.DecodeByte(b)
		if !ok {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}
