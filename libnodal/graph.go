package libnodal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
)

// VtxID is a zero-based index that identifies a vertex in a given graph
type VtxID int32

// Boundary is the symbolic far end of a sprawling edge
const Boundary VtxID = -1

const (
	EdgesPerVertex = 3
)

// EdgeClass is the topological role of an edge
type EdgeClass byte

const (
	Edge_Plain     EdgeClass = 0 // interior edge lying on a cycle
	Edge_Loop      EdgeClass = 1
	Edge_Bridge    EdgeClass = 2
	Edge_BiEdge    EdgeClass = 3 // one of two or more parallel edges
	Edge_Sprawling EdgeClass = 4 // leg to the polygon boundary

	NumEdgeClasses = 5
)

func (ec EdgeClass) String() string {
	return [...]string{"plain", "loop", "bridge", "bi-edge", "sprawling"}[ec]
}

// Edge joins A and B, where B == Boundary for a sprawling edge and A <= B otherwise.
type Edge struct {
	A, B  VtxID
	Class EdgeClass
}

func (e Edge) IsLeg() bool {
	return e.B == Boundary
}

func (e Edge) IsLoop() bool {
	return e.A == e.B
}

// vtxSig is the per-vertex invariant used to prune isomorphism candidates
type vtxSig struct {
	degree  int8
	byClass [NumEdgeClasses]int8
}

// Graph is a trivalent multigraph with legs, dual to a nodal subdivision.
//
// A Graph is immutable once constructed; edge classes and search invariants are computed once in NewGraph.
type Graph struct {
	numVtx int
	edges  []Edge
	counts [NumEdgeClasses]int
	inc    [][]int32 // incident edge indexes per vertex (a loop appears once)
	sigs   []vtxSig
	pairs  []uint16 // numVtx x numVtx; (multiplicity << 3) | class of the edges joining two distinct vertices
}

// NewGraph forms a Graph from numVtx vertices and the given edge ends.
// Use Boundary as an end to form a sprawling edge.  Degrees are not checked here; see NewSkeleton.
func NewGraph(numVtx int, ends [][2]VtxID) (*Graph, error) {
	X := &Graph{
		numVtx: numVtx,
		edges:  make([]Edge, len(ends)),
		inc:    make([][]int32, numVtx),
	}

	for ei, ab := range ends {
		a, b := ab[0], ab[1]
		if a == Boundary {
			a, b = b, a
		}
		if a == Boundary {
			return nil, errors.Wrapf(nodal3.ErrBadEdge, "edge %d has no interior end", ei)
		}
		if b != Boundary && b < a {
			a, b = b, a
		}
		if a < 0 || int(a) >= numVtx || b < Boundary || int(b) >= numVtx {
			return nil, errors.Wrapf(nodal3.ErrBadVtxID, "edge %d joins %d and %d (have %d vertices)", ei, ab[0], ab[1], numVtx)
		}
		X.edges[ei] = Edge{A: a, B: b}
		X.inc[a] = append(X.inc[a], int32(ei))
		if b != Boundary && b != a {
			X.inc[b] = append(X.inc[b], int32(ei))
		}
	}

	X.classifyEdges()
	X.computeSignatures()
	return X, nil
}

func (X *Graph) NumVerts() int {
	return X.numVtx
}

func (X *Graph) NumEdges() int {
	return len(X.edges)
}

// Edges returns this graph's edges; the slice must be considered read-only.
func (X *Graph) Edges() []Edge {
	return X.edges
}

// Degree returns the number of edge ends at vertex v, counting a loop twice.
func (X *Graph) Degree(v VtxID) int {
	deg := 0
	for _, ei := range X.inc[v] {
		if X.edges[ei].IsLoop() {
			deg += 2
		} else {
			deg++
		}
	}
	return deg
}

// CountClass returns the number of edges of the given class.
func (X *Graph) CountClass(ec EdgeClass) int {
	return X.counts[ec]
}

// CheckTrivalent returns ErrNotTrivalent if any vertex does not have degree 3.
func (X *Graph) CheckTrivalent() error {
	for v := 0; v < X.numVtx; v++ {
		if deg := X.Degree(VtxID(v)); deg != EdgesPerVertex {
			return errors.Wrapf(nodal3.ErrNotTrivalent, "vertex %d has degree %d", v, deg)
		}
	}
	return nil
}

func (X *Graph) computeSignatures() {
	X.sigs = make([]vtxSig, X.numVtx)
	X.pairs = make([]uint16, X.numVtx*X.numVtx)

	for v := range X.sigs {
		X.sigs[v].degree = int8(X.Degree(VtxID(v)))
	}
	for _, e := range X.edges {
		X.sigs[e.A].byClass[e.Class]++
		if e.IsLeg() || e.IsLoop() {
			continue
		}
		X.sigs[e.B].byClass[e.Class]++

		ab := int(e.A)*X.numVtx + int(e.B)
		ba := int(e.B)*X.numVtx + int(e.A)
		code := X.pairs[ab] + (1 << 3)
		code = (code &^ 0x7) | uint16(e.Class)
		X.pairs[ab] = code
		X.pairs[ba] = code
	}
}

// pair returns the multiplicity+class code of the edges joining distinct vertices a and b (0 if none)
func (X *Graph) pair(a, b VtxID) uint16 {
	return X.pairs[int(a)*X.numVtx+int(b)]
}

// HashKey is the coarse invariant used to bucket graphs before exact isomorphism testing.
type HashKey struct {
	Loops     int
	Bridges   int
	BiEdges   int
	Sprawling int
}

// HashKey returns the per-class edge counts of this graph.
func (X *Graph) HashKey() HashKey {
	return HashKey{
		Loops:     X.counts[Edge_Loop],
		Bridges:   X.counts[Edge_Bridge],
		BiEdges:   X.counts[Edge_BiEdge],
		Sprawling: X.counts[Edge_Sprawling],
	}
}

// String formats the key as "loops:bridges:bi-edges:sprawling"
func (key HashKey) String() string {
	var buf [4 * 20]byte
	var digits [20]byte
	out := buf[:0]
	for i, n := range [4]int{key.Loops, key.Bridges, key.BiEdges, key.Sprawling} {
		if i > 0 {
			out = append(out, nodal3.HashSep...)
		}
		out = append(out, PrintInt(digits[:], int64(n))...)
	}
	return string(out)
}

// CategorizingHash returns the bucket key of this graph ("L:B:E:S").
// Isomorphic graphs always share a key; the converse does not hold.
func (X *Graph) CategorizingHash() string {
	return X.HashKey().String()
}

var (
	quote = []byte("\"")
	space = []byte(" ")
	comma = []byte(",")
)

var kClassRunes = [NumEdgeClasses]string{"-", "^", "|", "=", ">"}

// WriteAsString writes a compact, order-independent form of this graph:
//
//	v=<count>,"1-2 1=2 2|3 3^ 4>"
//
// Vertex IDs are printed one-based; "-" plain, "|" bridge, "=" bi-edge, "^" loop, ">" leg.
func (X *Graph) WriteAsString(out io.Writer) {
	edges := append([]Edge(nil), X.edges...)
	sort.Slice(edges, func(i, j int) bool {
		ei, ej := edges[i], edges[j]
		if ei.A != ej.A {
			return ei.A < ej.A
		}
		if ei.IsLeg() != ej.IsLeg() {
			return ej.IsLeg()
		}
		if ei.B != ej.B {
			return ei.B < ej.B
		}
		return ei.Class < ej.Class
	})

	var buf [12]byte
	fmt.Fprintf(out, "v=%d,", X.numVtx)
	out.Write(quote)
	for i, e := range edges {
		if i > 0 {
			out.Write(space)
		}
		out.Write(PrintInt(buf[:], int64(e.A)+1))
		out.Write([]byte(kClassRunes[e.Class]))
		if !e.IsLeg() && !e.IsLoop() {
			out.Write(PrintInt(buf[:], int64(e.B)+1))
		}
	}
	out.Write(quote)
}

func (X *Graph) String() string {
	b := strings.Builder{}
	b.Grow(8 * len(X.edges))
	X.WriteAsString(&b)
	return b.String()
}

// PrintInt prints the given integer in base 10, right justified in the buffer.
// Returns the tight-fitting slice of the output digits (a slice of []dst)
func PrintInt(dst []byte, val int64) []byte {
	sign := int(1)
	if val < 0 {
		sign = -1
		val = -val
	}
	L := len(dst)
	i := L
	for {
		next := val / 10
		digit := val - 10*next
		val = next
		i--
		dst[i] = '0' + byte(digit)
		if val == 0 {
			break
		}
	}
	if sign < 0 {
		i--
		dst[i] = '-'
	}
	return dst[i:]
}
