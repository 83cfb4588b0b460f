package chippers

import (
	"crypto/rand"
	mathrand "math/rand"
)

// RandomSource supplies the uniform bytes consumed by the RND instruction.
// It does not need to be cryptographically secure, only substitutable, so
// that programs using RND stay testable.
type RandomSource interface {
	Byte() (byte, error)
}

// OSRandomSource draws from the operating system entropy pool. It is the
// default source of a new machine.
type OSRandomSource struct{}

func (OSRandomSource) Byte() (byte, error) {
	buff := [1]byte{}
	if _, err := rand.Read(buff[:]); err != nil {
		return 0, err
	}
	return buff[0], nil
}

// SeededRandomSource is a deterministic source for tests and replays.
type SeededRandomSource struct {
	rng *mathrand.Rand
}

func NewSeededRandomSource(seed int64) *SeededRandomSource {
	return &SeededRandomSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *SeededRandomSource) Byte() (byte, error) {
	return byte(s.rng.Intn(256)), nil
}
