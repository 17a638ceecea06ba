package ecs

import "math/bits"

// mask256 is a fixed-size bitset over component IDs, used to identify
// archetypes. One bit per component ID; the value is comparable, so it can
// serve directly as a map key in the archetype index.
type mask256 [4]uint64

func (m *mask256) set(id ComponentID) {
	m[id>>6] |= 1 << (id & 63)
}

func (m *mask256) unset(id ComponentID) {
	m[id>>6] &^= 1 << (id & 63)
}

func (m mask256) has(id ComponentID) bool {
	return m[id>>6]&(1<<(id&63)) != 0
}

// containsAll reports whether every bit set in sub is also set in m.
func (m mask256) containsAll(sub mask256) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// intersects reports whether m and o share at least one set bit.
func (m mask256) intersects(o mask256) bool {
	return m[0]&o[0] != 0 || m[1]&o[1] != 0 || m[2]&o[2] != 0 || m[3]&o[3] != 0
}

func (m mask256) isEmpty() bool {
	return m == mask256{}
}

func (m mask256) count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

func (m mask256) forEachSet(fn func(id ComponentID)) {
	for word := 0; word < 4; word++ {
		w := m[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			fn(ComponentID(word<<6 + bit))
			w &^= 1 << bit
		}
	}
}

func maskOf(ids []ComponentID) mask256 {
	var m mask256
	for _, id := range ids {
		m.set(id)
	}
	return m
}
