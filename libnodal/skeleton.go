package libnodal

import (
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
)

// halfEdge names side k of vertex cell ci
type halfEdge struct {
	cell int32
	side int32
}

type rawEdge struct {
	a, b  VtxID // b == Boundary for a leg
	alive bool
}

type skeletonBuilder struct {
	subd     *Subdivision
	vtxOf    []VtxID // cell index => vertex (Boundary for node cells)
	numVtx   int
	edges    []rawEdge
	inc      [][]int32
	aliveVtx []bool
}

// NewSkeleton builds the trivalent graph dual to the given nodal subdivision.
//
// Every triangle (or other non-node cell) becomes a vertex.  Each of its sides is traced across the subdivision,
// passing straight through node cells, until it reaches another vertex cell (an edge, or a loop if it comes back)
// or the polygon boundary (a sprawling edge).  Trees hanging off the boundary are then pruned so that every
// remaining vertex keeps degree 3.
//
// A cell whose dual vertex does not have degree 3 is rejected with ErrNotTrivalent.
func NewSkeleton(subd *Subdivision) (*Graph, error) {
	sb := skeletonBuilder{
		subd:  subd,
		vtxOf: make([]VtxID, subd.NumCells()),
	}

	for ci := range sb.vtxOf {
		c := subd.Cell(ci)
		if c.IsNode() {
			sb.vtxOf[ci] = Boundary
			continue
		}
		if c.NumSides() != EdgesPerVertex {
			return nil, errors.Wrapf(nodal3.ErrNotTrivalent, "cell %d has %d sides", ci, c.NumSides())
		}
		sb.vtxOf[ci] = VtxID(sb.numVtx)
		sb.numVtx++
	}
	sb.inc = make([][]int32, sb.numVtx)

	if err := sb.traceEdges(); err != nil {
		return nil, err
	}
	sb.pruneBoundaryTrees()

	X, err := sb.compact()
	if err != nil {
		return nil, err
	}
	if err = X.CheckTrivalent(); err != nil {
		return nil, err
	}
	return X, nil
}

func (sb *skeletonBuilder) addEdge(a, b VtxID) {
	ei := int32(len(sb.edges))
	sb.edges = append(sb.edges, rawEdge{a: a, b: b, alive: true})
	sb.inc[a] = append(sb.inc[a], ei)
	if b != Boundary && b != a {
		sb.inc[b] = append(sb.inc[b], ei)
	}
}

func (sb *skeletonBuilder) traceEdges() error {
	consumed := make(map[halfEdge]bool, 3*sb.numVtx)

	for ci, v := range sb.vtxOf {
		if v == Boundary {
			continue
		}
		for k := int32(0); k < EdgesPerVertex; k++ {
			he := halfEdge{int32(ci), k}
			if consumed[he] {
				continue
			}
			consumed[he] = true

			far, reached, err := sb.trace(he)
			if err != nil {
				return err
			}
			if !reached {
				sb.addEdge(v, Boundary)
				continue
			}
			consumed[far] = true
			sb.addEdge(v, sb.vtxOf[far.cell])
		}
	}
	return nil
}

// trace follows the strand leaving through the given half edge.
// Returns the half edge it arrives at, or false if it reaches the polygon boundary.
func (sb *skeletonBuilder) trace(from halfEdge) (halfEdge, bool, error) {
	cur := int(from.cell)
	sd := sb.subd.Cell(cur).Side(int(from.side))

	for steps := 0; steps <= 2*sb.subd.NumCells(); steps++ {
		if sb.subd.IsBoundary(sd) {
			return halfEdge{}, false, nil
		}
		next, ok := sb.subd.Across(cur, sd)
		if !ok {
			break
		}
		c := sb.subd.Cell(next)
		k := c.SideIndex(sd)
		if !c.IsNode() {
			return halfEdge{int32(next), int32(k)}, true, nil
		}
		sd = c.Opposite(k)
		cur = next
	}

	return halfEdge{}, false, errors.Wrapf(nodal3.ErrBrokenStrand, "starting at cell %d side %d", from.cell, from.side)
}

// pruneBoundaryTrees repeatedly removes a vertex with two legs and one other (non-loop) edge,
// turning that edge into a leg of its far end.
func (sb *skeletonBuilder) pruneBoundaryTrees() {
	alive := make([]bool, sb.numVtx)
	for v := range alive {
		alive[v] = true
	}

	for pruned := true; pruned; {
		pruned = false
		for v := VtxID(0); int(v) < sb.numVtx; v++ {
			if !alive[v] {
				continue
			}
			var legs [EdgesPerVertex]int32
			numLegs, numOther := 0, 0
			stem := int32(-1)
			for _, ei := range sb.inc[v] {
				e := &sb.edges[ei]
				switch {
				case !e.alive:
				case e.b == Boundary && e.a == v:
					if numLegs < len(legs) {
						legs[numLegs] = ei
					}
					numLegs++
				case e.a == e.b:
					numOther += 2
				default:
					stem = ei
					numOther++
				}
			}
			if numLegs != 2 || numOther != 1 {
				continue
			}

			alive[v] = false
			sb.edges[legs[0]].alive = false
			sb.edges[legs[1]].alive = false
			e := &sb.edges[stem]
			if e.a == v {
				e.a = e.b
			}
			e.b = Boundary
			pruned = true
		}
	}

	for ei := range sb.edges {
		e := &sb.edges[ei]
		if e.alive && !alive[e.a] {
			e.alive = false
		}
	}
	sb.inc = nil
	sb.vtxOf = nil
	sb.aliveVtx = alive
}

// compact renumbers surviving vertices (keeping their order) and forms the Graph.
func (sb *skeletonBuilder) compact() (*Graph, error) {
	remap := make([]VtxID, sb.numVtx)
	numVtx := 0
	for v, keep := range sb.aliveVtx {
		if keep {
			remap[v] = VtxID(numVtx)
			numVtx++
		}
	}

	ends := make([][2]VtxID, 0, len(sb.edges))
	for _, e := range sb.edges {
		if !e.alive {
			continue
		}
		b := e.b
		if b != Boundary {
			b = remap[b]
		}
		ends = append(ends, [2]VtxID{remap[e.a], b})
	}
	return NewGraph(numVtx, ends)
}
