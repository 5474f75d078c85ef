// Package quantum simulates a BB84-style key agreement between two nodes.
// Node A prepares random bits in random bases, node B measures in its own
// random bases, and only the positions where both bases agree are kept.
// No physics and no eavesdropping are modelled.
package quantum

import (
	"qkd-ledger/domain"
	"strings"
)

const (
	DefaultBits      = 16
	DefaultKeyLength = 16
)

var (
	bitAlphabet   = [2]domain.Bit{domain.Zero, domain.One}
	basisAlphabet = [2]domain.Basis{domain.Rectilinear, domain.Diagonal}
)

// Agreement is the outcome of one run.
type Agreement struct {
	Secret    domain.SharedSecret
	Generated int // positions prepared by node A
	Sifted    int // positions kept before truncation
}

type Simulator struct {
	random    RandomSource
	keyLength int
}

// NewSimulator builds a simulator truncating sifted keys to keyLength.
// A non-positive keyLength falls back to DefaultKeyLength.
func NewSimulator(random RandomSource, keyLength int) *Simulator {
	if keyLength <= 0 {
		keyLength = DefaultKeyLength
	}
	return &Simulator{random: random, keyLength: keyLength}
}

func (s *Simulator) GenerateBits(n int) domain.BitSequence {
	if n <= 0 {
		return domain.BitSequence{}
	}
	bits := make(domain.BitSequence, n)
	for i := range bits {
		bits[i] = bitAlphabet[s.random.IntN(len(bitAlphabet))]
	}
	return bits
}

func (s *Simulator) GenerateBases(n int) domain.BasisSequence {
	if n <= 0 {
		return domain.BasisSequence{}
	}
	bases := make(domain.BasisSequence, n)
	for i := range bases {
		bases[i] = basisAlphabet[s.random.IntN(len(basisAlphabet))]
	}
	return bases
}

// Sift keeps bits[i] wherever both bases agree at i, preserving order.
// Sequences of unequal length are compared over their common prefix.
func Sift(bits domain.BitSequence, basesA, basesB domain.BasisSequence) string {
	n := min(len(bits), len(basesA), len(basesB))
	var b strings.Builder
	for i := 0; i < n; i++ {
		if basesA[i] == basesB[i] {
			b.WriteByte(byte(bits[i]))
		}
	}
	return b.String()
}

// RunAgreement performs one exchange over n prepared positions.
// Both nodes end up with the same secret: no channel noise is modelled.
func (s *Simulator) RunAgreement(n int) Agreement {
	bitsA := s.GenerateBits(n)
	basesA := s.GenerateBases(n)
	basesB := s.GenerateBases(n)

	sifted := Sift(bitsA, basesA, basesB)
	key := sifted
	if len(key) > s.keyLength {
		key = key[:s.keyLength]
	}
	return Agreement{
		Secret:    domain.SharedSecret(key),
		Generated: len(bitsA),
		Sifted:    len(sifted),
	}
}
