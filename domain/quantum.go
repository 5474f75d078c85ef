// Package domain contains core concepts of the key agreement and the ledger.
// This file defines the symbols exchanged during the simulated agreement.
package domain

import "strings"

// Bit is a single binary symbol prepared by a node.
type Bit byte

const (
	Zero Bit = '0'
	One  Bit = '1'
)

// Basis is the polarisation basis a node prepares or measures with.
type Basis byte

const (
	Rectilinear Basis = '+'
	Diagonal    Basis = 'x'
)

type BitSequence []Bit

func (s BitSequence) String() string {
	var b strings.Builder
	for _, bit := range s {
		b.WriteByte(byte(bit))
	}
	return b.String()
}

type BasisSequence []Basis

func (s BasisSequence) String() string {
	var b strings.Builder
	for _, basis := range s {
		b.WriteByte(byte(basis))
	}
	return b.String()
}

// SharedSecret is the sifted bit string both nodes hold after an agreement.
// An empty secret is a legitimate outcome when no basis matched.
type SharedSecret string

func (s SharedSecret) String() string { return string(s) }

func (s SharedSecret) Len() int { return len(s) }

// Valid reports whether every symbol is a binary digit.
func (s SharedSecret) Valid() bool {
	for i := 0; i < len(s); i++ {
		if Bit(s[i]) != Zero && Bit(s[i]) != One {
			return false
		}
	}
	return true
}
