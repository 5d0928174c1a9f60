// Package marking implements the fixed-width bit-vector encoding of
// Petri net markings. A marking assigns a token presence bit to every
// place; for 1-safe nets one bit per place is enough, so a whole marking
// fits in a single 256-bit word.
package marking

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/holiman/uint256"
)

// MaxPlaces is the widest net the codec supports. One bit per place in a
// 256-bit word.
const MaxPlaces = 256

// Marking is a token-presence bit vector over n places. Bit i holds the
// token state of the place with ordinal index i.
//
// Marking is an immutable value type: Set and Clear return new values.
// It is comparable, so markings can key maps directly without a separate
// hash step.
type Marking struct {
	bits uint256.Int
	n    int
}

// New returns the empty marking over n places.
func New(n int) Marking {
	return Marking{n: n}
}

// FromVector builds a marking from a 0/1 token vector.
func FromVector(tokens []int) (Marking, error) {
	if len(tokens) > MaxPlaces {
		return Marking{}, fmt.Errorf("marking: %d places exceeds codec width %d", len(tokens), MaxPlaces)
	}
	m := New(len(tokens))
	for i, v := range tokens {
		switch v {
		case 0:
		case 1:
			m = m.Set(i)
		default:
			return Marking{}, fmt.Errorf("marking: place %d holds %d tokens, want 0 or 1", i, v)
		}
	}
	return m, nil
}

// Len returns the number of places the marking covers.
func (m Marking) Len() int { return m.n }

// Has reports whether place i holds a token.
func (m Marking) Has(i int) bool {
	return m.bits[i/64]>>(uint(i)%64)&1 == 1
}

// Set returns a copy of m with a token in place i.
func (m Marking) Set(i int) Marking {
	m.bits[i/64] |= 1 << (uint(i) % 64)
	return m
}

// Clear returns a copy of m with no token in place i.
func (m Marking) Clear(i int) Marking {
	m.bits[i/64] &^= 1 << (uint(i) % 64)
	return m
}

// Tokens returns the total number of tokens present.
func (m Marking) Tokens() int {
	count := 0
	for _, limb := range m.bits {
		count += bits.OnesCount64(limb)
	}
	return count
}

// Covers reports whether every token in o is also present in m.
func (m Marking) Covers(o Marking) bool {
	var and uint256.Int
	and.And(&m.bits, &o.bits)
	return and.Eq(&o.bits)
}

// Disjoint reports whether m and o share no token.
func (m Marking) Disjoint(o Marking) bool {
	var and uint256.Int
	and.And(&m.bits, &o.bits)
	return and.IsZero()
}

// Union returns the marking holding the tokens of both m and o.
func (m Marking) Union(o Marking) Marking {
	m.bits.Or(&m.bits, &o.bits)
	return m
}

// Minus returns m with the tokens of o removed.
func (m Marking) Minus(o Marking) Marking {
	var not uint256.Int
	not.Not(&o.bits)
	m.bits.And(&m.bits, &not)
	return m
}

// Vector expands the marking into a float64 token vector, one entry per
// place. Used by the objective optimizer.
func (m Marking) Vector() []float64 {
	v := make([]float64, m.n)
	for i := range v {
		if m.Has(i) {
			v[i] = 1
		}
	}
	return v
}

// Ints expands the marking into a 0/1 int vector.
func (m Marking) Ints() []int {
	v := make([]int, m.n)
	for i := range v {
		if m.Has(i) {
			v[i] = 1
		}
	}
	return v
}

// String renders the marking as a tuple, e.g. "(1,0,0)".
func (m Marking) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < m.n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if m.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// Hex returns a compact hexadecimal form of the bit vector, useful as a
// stable identifier in reports and logs.
func (m Marking) Hex() string {
	return m.bits.Hex()
}
