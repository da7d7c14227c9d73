package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const randomBytes = 12

// Generator creates opaque IDs used to correlate a load across log lines.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator yields "<prefix>_<hex>" identifiers from crypto/rand.
type RandomGenerator struct {
	prefix  string
	entropy io.Reader
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{
		prefix:  strings.TrimSpace(prefix),
		entropy: rand.Reader,
	}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := io.ReadFull(g.entropy, buf); err != nil {
		return "", crerr.Wrap(err, "read random id bytes")
	}

	suffix := hex.EncodeToString(buf)
	if g.prefix == "" {
		return suffix, nil
	}
	return g.prefix + "_" + suffix, nil
}
