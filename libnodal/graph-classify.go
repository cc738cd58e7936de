package libnodal

// classifyEdges tags every edge and tallies X.counts.
//
// Precedence: sprawling, loop, bi-edge, bridge, plain.  Bridges are found over the interior graph only (legs ignored),
// so parallel edges and loops never qualify.
func (X *Graph) classifyEdges() {
	mult := make(map[[2]VtxID]int, len(X.edges))
	for _, e := range X.edges {
		if !e.IsLeg() && !e.IsLoop() {
			mult[[2]VtxID{e.A, e.B}]++
		}
	}

	isBridge := X.findBridges()

	X.counts = [NumEdgeClasses]int{}
	for ei := range X.edges {
		e := &X.edges[ei]
		switch {
		case e.IsLeg():
			e.Class = Edge_Sprawling
		case e.IsLoop():
			e.Class = Edge_Loop
		case mult[[2]VtxID{e.A, e.B}] > 1:
			e.Class = Edge_BiEdge
		case isBridge[ei]:
			e.Class = Edge_Bridge
		default:
			e.Class = Edge_Plain
		}
		X.counts[e.Class]++
	}
}

// findBridges runs a low-link DFS over the interior multigraph.
// The tree edge into a vertex is skipped by edge index (not by vertex), so a parallel twin still closes a cycle.
func (X *Graph) findBridges() []bool {
	isBridge := make([]bool, len(X.edges))
	disc := make([]int32, X.numVtx)
	low := make([]int32, X.numVtx)
	tick := int32(0)

	var visit func(v VtxID, viaEdge int32)
	visit = func(v VtxID, viaEdge int32) {
		tick++
		disc[v] = tick
		low[v] = tick

		for _, ei := range X.inc[v] {
			e := X.edges[ei]
			if ei == viaEdge || e.IsLeg() || e.IsLoop() {
				continue
			}
			w := e.A
			if w == v {
				w = e.B
			}
			if disc[w] == 0 {
				visit(w, ei)
				if low[w] < low[v] {
					low[v] = low[w]
				}
				if low[w] > disc[v] {
					isBridge[ei] = true
				}
			} else if disc[w] < low[v] {
				low[v] = disc[w]
			}
		}
	}

	for v := 0; v < X.numVtx; v++ {
		if disc[v] == 0 {
			visit(VtxID(v), -1)
		}
	}
	return isBridge
}
