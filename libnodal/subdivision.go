package libnodal

import (
	"io"
	"sort"
	"strings"

	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
)

// PointID identifies a lattice point of the polygon, as numbered by the input.
type PointID int32

// Side is an unordered pair of lattice points, stored so that Lo < Hi.
type Side struct {
	Lo, Hi PointID
}

// MakeSide forms the canonical Side joining a and b.
func MakeSide(a, b PointID) Side {
	if a > b {
		a, b = b, a
	}
	return Side{a, b}
}

// CellKind names the role a cell plays in a nodal subdivision
type CellKind byte

const (
	Cell_Face     CellKind = 0 // polygon of any size that is neither of the below
	Cell_Triangle CellKind = 1 // unimodular triangle
	Cell_Node     CellKind = 2 // parallelogram left behind by a flip
)

// Cell is an elementary region of a subdivision.
//
// Pts is the boundary cycle.  For a node cell the order is [p, r, q, s] where pq is the removed diagonal,
// so side i and side i+2 are parallel and a strand crossing the cell leaves through the opposite side.
type Cell struct {
	Kind CellKind
	Pts  []PointID
}

func NewTriangle(a, b, c PointID) Cell {
	return Cell{Kind: Cell_Triangle, Pts: []PointID{a, b, c}}
}

func NewNodeCell(p, r, q, s PointID) Cell {
	return Cell{Kind: Cell_Node, Pts: []PointID{p, r, q, s}}
}

func NewFace(pts ...PointID) Cell {
	return Cell{Kind: Cell_Face, Pts: append([]PointID(nil), pts...)}
}

// NumSides returns the number of bounding sides of this cell.
func (c Cell) NumSides() int {
	return len(c.Pts)
}

// Side returns the i-th side, joining Pts[i] and Pts[i+1] (cyclically).
func (c Cell) Side(i int) Side {
	n := len(c.Pts)
	return MakeSide(c.Pts[i%n], c.Pts[(i+1)%n])
}

// SideIndex returns the index of the given side in this cell, or -1.
func (c Cell) SideIndex(sd Side) int {
	for i := range c.Pts {
		if c.Side(i) == sd {
			return i
		}
	}
	return -1
}

// Opposite returns the side a strand leaves through after entering a node cell through side i.
func (c Cell) Opposite(i int) Side {
	return c.Side(i + 2)
}

func (c Cell) IsNode() bool {
	return c.Kind == Cell_Node
}

// triKey is the sorted point triple identifying a triangle regardless of point order.
type triKey [3]PointID

func (c Cell) triKey() triKey {
	k := triKey{c.Pts[0], c.Pts[1], c.Pts[2]}
	sort.Slice(k[:], func(i, j int) bool { return k[i] < k[j] })
	return k
}

func (c Cell) validate() error {
	switch c.Kind {
	case Cell_Triangle:
		if len(c.Pts) != 3 {
			return errors.Wrapf(nodal3.ErrBadCell, "triangle with %d points", len(c.Pts))
		}
	case Cell_Node:
		if len(c.Pts) != 4 {
			return errors.Wrapf(nodal3.ErrBadCell, "node cell with %d points", len(c.Pts))
		}
	case Cell_Face:
		if len(c.Pts) < 3 {
			return errors.Wrapf(nodal3.ErrBadCell, "face with %d points", len(c.Pts))
		}
	default:
		return errors.Wrapf(nodal3.ErrBadCell, "unknown cell kind %d", c.Kind)
	}
	for i, pi := range c.Pts {
		for _, pj := range c.Pts[i+1:] {
			if pi == pj {
				return errors.Wrapf(nodal3.ErrBadCell, "point %d repeats", pi)
			}
		}
	}
	return nil
}

func (c Cell) clone() Cell {
	return Cell{Kind: c.Kind, Pts: append([]PointID(nil), c.Pts...)}
}

// noCell marks an unused slot of a sideCells pair
const noCell = int32(-1)

// sideCells holds the (up to two) cells containing a side
type sideCells [2]int32

// Subdivision is a nodal subdivision of a lattice polygon: an ordered set of cells plus the side adjacency between them.
//
// A Subdivision is immutable once constructed; ApplyFlip returns a new Subdivision.
type Subdivision struct {
	cells     []Cell
	sides     map[Side]sideCells
	triangles map[triKey]int32
	numNodes  int
}

// NewSubdivision validates the given cells and builds their side adjacency.
// The caller must not modify cells afterwards.
func NewSubdivision(cells []Cell) (*Subdivision, error) {
	subd := &Subdivision{
		cells:     cells,
		sides:     make(map[Side]sideCells, 2*len(cells)),
		triangles: make(map[triKey]int32, len(cells)),
	}

	for ci, c := range cells {
		if err := c.validate(); err != nil {
			return nil, errors.WithMessagef(err, "cell %d", ci)
		}
		switch c.Kind {
		case Cell_Node:
			subd.numNodes++
		case Cell_Triangle:
			key := c.triKey()
			if _, dupe := subd.triangles[key]; dupe {
				return nil, errors.Wrapf(nodal3.ErrBadCell, "cell %d repeats triangle %v", ci, key)
			}
			subd.triangles[key] = int32(ci)
		}

		for i := 0; i < c.NumSides(); i++ {
			sd := c.Side(i)
			pair, exists := subd.sides[sd]
			switch {
			case !exists:
				pair = sideCells{int32(ci), noCell}
			case pair[1] == noCell:
				pair[1] = int32(ci)
			default:
				return nil, errors.Wrapf(nodal3.ErrBrokenSides, "side %d-%d (cells %d, %d, %d)", sd.Lo, sd.Hi, pair[0], pair[1], ci)
			}
			subd.sides[sd] = pair
		}
	}

	return subd, nil
}

func (subd *Subdivision) NumCells() int {
	return len(subd.cells)
}

func (subd *Subdivision) Cell(i int) Cell {
	return subd.cells[i]
}

// NumNodes returns the number of node cells (flips applied so far)
func (subd *Subdivision) NumNodes() int {
	return subd.numNodes
}

func (subd *Subdivision) NumTriangles() int {
	return len(subd.triangles)
}

// Across returns the cell on the other side of the given side of cell ci.
// If no such cell exists, the side lies on the polygon boundary and false is returned.
func (subd *Subdivision) Across(ci int, sd Side) (int, bool) {
	pair, exists := subd.sides[sd]
	if !exists {
		return 0, false
	}
	switch int32(ci) {
	case pair[0]:
		if pair[1] != noCell {
			return int(pair[1]), true
		}
	case pair[1]:
		return int(pair[0]), true
	}
	return 0, false
}

// IsBoundary is the one predicate deciding polygon boundary contact: a side is on the boundary iff exactly one cell contains it.
func (subd *Subdivision) IsBoundary(sd Side) bool {
	pair, exists := subd.sides[sd]
	return exists && pair[1] == noCell
}

// Adjacent returns true if cells i and j share at least one side.
func (subd *Subdivision) Adjacent(i, j int) bool {
	ci := subd.cells[i]
	for k := 0; k < ci.NumSides(); k++ {
		if cj, ok := subd.Across(i, ci.Side(k)); ok && cj == j {
			return true
		}
	}
	return false
}

// TouchesBoundary returns true if any side of cell i lies on the polygon boundary.
func (subd *Subdivision) TouchesBoundary(i int) bool {
	ci := subd.cells[i]
	for k := 0; k < ci.NumSides(); k++ {
		if subd.IsBoundary(ci.Side(k)) {
			return true
		}
	}
	return false
}

// findTriangle returns the cell index of the triangle with the given points, or -1.
func (subd *Subdivision) findTriangle(c Cell) int {
	if c.Kind != Cell_Triangle || len(c.Pts) != 3 {
		return -1
	}
	if ci, found := subd.triangles[c.triKey()]; found {
		return int(ci)
	}
	return -1
}

// ApplyFlip returns a new Subdivision with the flip's two triangles replaced by their node cell.
//
// If either triangle is no longer present (e.g. already absorbed by an earlier flip), false is returned.
// A flip whose triangles are present but do not form a node cell, or whose result is inconsistent, is an error.
// The node cell takes the position of the first triangle; the remaining cells keep their order.
func (subd *Subdivision) ApplyFlip(f *Flip) (*Subdivision, bool, error) {
	i := subd.findTriangle(f.Pair[0])
	j := subd.findTriangle(f.Pair[1])
	if i < 0 || j < 0 {
		return nil, false, nil
	}
	node, ok := f.NodeCell()
	if !ok {
		return nil, false, errors.Wrapf(nodal3.ErrBadCell, "flip %d triangles do not share exactly one side", f.ID)
	}

	cells := make([]Cell, 0, len(subd.cells)-1)
	for ci, c := range subd.cells {
		switch ci {
		case i:
			cells = append(cells, node)
		case j:
		default:
			cells = append(cells, c)
		}
	}

	next, err := NewSubdivision(cells)
	if err != nil {
		return nil, false, errors.WithMessagef(err, "applying flip %d", f.ID)
	}
	return next, true, nil
}

// Clone returns a deep copy of this Subdivision.
func (subd *Subdivision) Clone() *Subdivision {
	cells := make([]Cell, len(subd.cells))
	for i, c := range subd.cells {
		cells[i] = c.clone()
	}
	dupe, err := NewSubdivision(cells)
	if err != nil {
		panic(err) // subd was already validated
	}
	return dupe
}

// Equal returns true if both subdivisions list the same cells in the same order.
func (subd *Subdivision) Equal(other *Subdivision) bool {
	if len(subd.cells) != len(other.cells) {
		return false
	}
	for i, ci := range subd.cells {
		cj := other.cells[i]
		if ci.Kind != cj.Kind || len(ci.Pts) != len(cj.Pts) {
			return false
		}
		for k := range ci.Pts {
			if ci.Pts[k] != cj.Pts[k] {
				return false
			}
		}
	}
	return true
}

// WriteAsString writes this subdivision as: {a,b,c} per triangle or face, [p,r,q,s] per node cell.
func (subd *Subdivision) WriteAsString(out io.Writer) {
	var buf [12]byte
	out.Write([]byte("{"))
	for ci, c := range subd.cells {
		if ci > 0 {
			out.Write(comma)
		}
		lhs, rhs := "{", "}"
		if c.IsNode() {
			lhs, rhs = "[", "]"
		}
		out.Write([]byte(lhs))
		for k, pt := range c.Pts {
			if k > 0 {
				out.Write(comma)
			}
			out.Write(PrintInt(buf[:], int64(pt)))
		}
		out.Write([]byte(rhs))
	}
	out.Write([]byte("}"))
}

func (subd *Subdivision) String() string {
	b := strings.Builder{}
	b.Grow(16 * len(subd.cells))
	subd.WriteAsString(&b)
	return b.String()
}
