// Package cas provides BLAKE3 content digests for transcoded text.
package cas

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest accumulates a BLAKE3-256 hash over everything written to it.
type Digest struct {
	h *blake3.Hasher
}

// NewDigest returns an empty digest.
func NewDigest() *Digest {
	return &Digest{h: blake3.New()}
}

// Write adds p to the digest. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Hex returns the hex-encoded digest of the data written so far.
func (d *Digest) Hex() string {
	return hex.EncodeToString(d.h.Sum(nil))
}
