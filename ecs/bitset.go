package ecs

import "math/bits"

// bitset is a growable bitset used for system access footprints, which span
// the combined component and resource ID space and so can exceed the fixed
// archetype mask width.
type bitset []uint64

func (b *bitset) set(bit int) {
	word := bit >> 6
	for len(*b) <= word {
		*b = append(*b, 0)
	}
	(*b)[word] |= 1 << (bit & 63)
}

func (b bitset) has(bit int) bool {
	word := bit >> 6
	if word >= len(b) {
		return false
	}
	return b[word]&(1<<(bit&63)) != 0
}

// intersects reports whether b and o share at least one set bit.
func (b bitset) intersects(o bitset) bool {
	n := min(len(b), len(o))
	for i := 0; i < n; i++ {
		if b[i]&o[i] != 0 {
			return true
		}
	}
	return false
}

// containsAll reports whether every bit set in sub is also set in b.
func (b bitset) containsAll(sub bitset) bool {
	for i, w := range sub {
		if w == 0 {
			continue
		}
		if i >= len(b) || b[i]&w != w {
			return false
		}
	}
	return true
}

func (b bitset) isEmpty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b bitset) clone() bitset {
	out := make(bitset, len(b))
	copy(out, b)
	return out
}

func (b *bitset) or(o bitset) {
	for len(*b) < len(o) {
		*b = append(*b, 0)
	}
	for i, w := range o {
		(*b)[i] |= w
	}
}

func (b bitset) forEachSet(fn func(bit int)) {
	for word, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			fn(word<<6 + bit)
			w &^= 1 << bit
		}
	}
}
