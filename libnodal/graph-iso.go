package libnodal

import (
	"sort"
)

// IsIsomorphic returns true if there is a vertex bijection from X to Y that preserves every edge (loops, legs and
// parallel edges included).  The search is exhaustive, so graphs with different hashes are handled correctly.
func (X *Graph) IsIsomorphic(Y *Graph) bool {
	if X == nil || Y == nil {
		return false
	}
	if X == Y {
		return true
	}
	if X.numVtx != Y.numVtx || len(X.edges) != len(Y.edges) || X.counts != Y.counts {
		return false
	}
	if !sameSigs(X.sigs, Y.sigs) {
		return false
	}
	if X.numVtx == 0 {
		return true
	}

	m := isoMatcher{
		X:     X,
		Y:     Y,
		order: X.bfsOrder(),
		fwd:   make([]VtxID, X.numVtx),
		used:  make([]bool, Y.numVtx),
	}
	for i := range m.fwd {
		m.fwd[i] = Boundary
	}
	return m.search(0)
}

func (sig vtxSig) less(other vtxSig) bool {
	if sig.degree != other.degree {
		return sig.degree < other.degree
	}
	for ci := range sig.byClass {
		if sig.byClass[ci] != other.byClass[ci] {
			return sig.byClass[ci] < other.byClass[ci]
		}
	}
	return false
}

func sameSigs(a, b []vtxSig) bool {
	sa := append([]vtxSig(nil), a...)
	sb := append([]vtxSig(nil), b...)
	sort.Slice(sa, func(i, j int) bool { return sa[i].less(sa[j]) })
	sort.Slice(sb, func(i, j int) bool { return sb[i].less(sb[j]) })
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// bfsOrder lists every vertex so that (within a component) each vertex after the first has an already listed neighbor.
// This keeps the pair-code checks in the search as tight as possible.
func (X *Graph) bfsOrder() []VtxID {
	order := make([]VtxID, 0, X.numVtx)
	seen := make([]bool, X.numVtx)

	for start := 0; start < X.numVtx; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		head := len(order)
		order = append(order, VtxID(start))
		for ; head < len(order); head++ {
			v := order[head]
			for _, ei := range X.inc[v] {
				e := X.edges[ei]
				if e.IsLeg() || e.IsLoop() {
					continue
				}
				w := e.A
				if w == v {
					w = e.B
				}
				if !seen[w] {
					seen[w] = true
					order = append(order, w)
				}
			}
		}
	}
	return order
}

type isoMatcher struct {
	X, Y  *Graph
	order []VtxID // X vertices in the order they are mapped
	fwd   []VtxID // X vertex => Y vertex (Boundary if unmapped)
	used  []bool  // Y vertex already an image
}

func (m *isoMatcher) search(depth int) bool {
	if depth == len(m.order) {
		return true
	}

	u := m.order[depth]
	for w := VtxID(0); int(w) < m.Y.numVtx; w++ {
		if m.used[w] || m.X.sigs[u] != m.Y.sigs[w] {
			continue
		}
		if !m.consistent(u, w, depth) {
			continue
		}
		m.fwd[u] = w
		m.used[w] = true
		if m.search(depth + 1) {
			return true
		}
		m.used[w] = false
		m.fwd[u] = Boundary
	}
	return false
}

// consistent checks that mapping u to w agrees with every vertex already mapped.
func (m *isoMatcher) consistent(u, w VtxID, depth int) bool {
	for _, u2 := range m.order[:depth] {
		if m.X.pair(u, u2) != m.Y.pair(w, m.fwd[u2]) {
			return false
		}
	}
	return true
}
