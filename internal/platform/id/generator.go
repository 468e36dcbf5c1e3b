package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

const defaultIDBytes = 8

// Generator creates opaque ids for queue entries, matches and history
// records. Ids appear in URL paths, so they stay short and hex-only.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns 16-character hex ids.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: defaultIDBytes}
}

// NewRandomGeneratorSize returns ids of 2*size hex characters.
func NewRandomGeneratorSize(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultIDBytes
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = defaultIDBytes
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return hex.EncodeToString(buf), nil
}
