package topcom

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Parse reads triangulations and flips (see InputExpr) and forms the Seed of an enumeration.
//
// T[] and flip[] indexes must each count up from 0.  If points are declared, every referenced point must be declared
// and flips whose triangles do not form a lattice parallelogram are dropped (and counted in Seed.DroppedFlips).
// Any failure is reported as nodal3.ErrBadInput.
func Parse(r io.Reader, name string) (*libnodal.Seed, error) {
	expr, err := parseInputExpr.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(nodal3.ErrBadInput, err.Error())
	}

	sb := seedBuilder{}
	for _, entry := range expr.Entries {
		switch {
		case entry.Points != nil:
			err = sb.applyPoints(entry.Points)
		case entry.Triang != nil:
			err = sb.applyTriang(entry.Triang)
		case entry.Flip != nil:
			err = sb.applyFlip(entry.Flip)
		}
		if err != nil {
			return nil, err
		}
	}

	sb.seed.Provenance = libnodal.IdentityProvenance(len(sb.seed.Subdivisions))
	return &sb.seed, nil
}

// ParseString is a convenience for Parse(strings.NewReader(input), "")
func ParseString(input string) (*libnodal.Seed, error) {
	return Parse(strings.NewReader(input), "")
}

type seedBuilder struct {
	seed   libnodal.Seed
	points [][2]int64 // nil unless declared
}

func badInput(pos lexer.Position, format string, args ...interface{}) error {
	return errors.Wrapf(nodal3.ErrBadInput, "%v: %s", pos, fmt.Sprintf(format, args...))
}

func (sb *seedBuilder) applyPoints(decl *PointsDecl) error {
	if sb.points != nil {
		return badInput(decl.Pos, "points declared more than once")
	}
	sb.points = make([][2]int64, len(decl.Points))
	for i, pt := range decl.Points {
		if len(pt.Coords) != 2 {
			return badInput(pt.Pos, "point %d has %d coordinates (expected 2)", i, len(pt.Coords))
		}
		sb.points[i] = [2]int64{pt.Coords[0].Value(), pt.Coords[1].Value()}
	}
	return nil
}

func (sb *seedBuilder) checkPoints(expr *CellExpr, pts []int32) error {
	if sb.points == nil {
		return nil
	}
	for _, pt := range pts {
		if int(pt) >= len(sb.points) {
			return badInput(expr.Pos, "point %d is not declared (have %d)", pt, len(sb.points))
		}
	}
	return nil
}

func (sb *seedBuilder) toCell(expr *CellExpr) (libnodal.Cell, error) {
	var cell libnodal.Cell
	switch {
	case len(expr.Node) > 0:
		if len(expr.Node) != 4 {
			return cell, badInput(expr.Pos, "node cell has %d points (expected 4)", len(expr.Node))
		}
		if err := sb.checkPoints(expr, expr.Node); err != nil {
			return cell, err
		}
		p := expr.Node
		cell = libnodal.NewNodeCell(libnodal.PointID(p[0]), libnodal.PointID(p[1]), libnodal.PointID(p[2]), libnodal.PointID(p[3]))
	case len(expr.Pts) == 3:
		if err := sb.checkPoints(expr, expr.Pts); err != nil {
			return cell, err
		}
		p := expr.Pts
		cell = libnodal.NewTriangle(libnodal.PointID(p[0]), libnodal.PointID(p[1]), libnodal.PointID(p[2]))
	case len(expr.Pts) > 3:
		if err := sb.checkPoints(expr, expr.Pts); err != nil {
			return cell, err
		}
		pts := make([]libnodal.PointID, len(expr.Pts))
		for i, pt := range expr.Pts {
			pts[i] = libnodal.PointID(pt)
		}
		cell = libnodal.NewFace(pts...)
	default:
		return cell, badInput(expr.Pos, "cell has fewer than 3 points")
	}
	return cell, nil
}

func (sb *seedBuilder) applyTriang(decl *TriangDecl) error {
	if want := len(sb.seed.Subdivisions); decl.Index != want {
		return badInput(decl.Pos, "got T[%d], expected T[%d]", decl.Index, want)
	}

	cells := make([]libnodal.Cell, len(decl.Cells))
	for i, expr := range decl.Cells {
		var err error
		if cells[i], err = sb.toCell(expr); err != nil {
			return err
		}
	}

	subd, err := libnodal.NewSubdivision(cells)
	if err != nil {
		return badInput(decl.Pos, "T[%d]: %v", decl.Index, err)
	}
	sb.seed.Subdivisions = append(sb.seed.Subdivisions, subd)
	return nil
}

func (sb *seedBuilder) applyFlip(decl *FlipDecl) error {
	if want := len(sb.seed.Flips) + sb.seed.DroppedFlips; decl.Index != want {
		return badInput(decl.Pos, "got flip[%d], expected flip[%d]", decl.Index, want)
	}

	flip := libnodal.Flip{
		ID:     decl.Index,
		Source: decl.Source,
	}
	for i, expr := range decl.Pair {
		cell, err := sb.toCell(expr)
		if err != nil {
			return err
		}
		if cell.Kind != libnodal.Cell_Triangle {
			return badInput(expr.Pos, "flip[%d] cell %d is not a triangle", decl.Index, i)
		}
		flip.Pair[i] = cell
	}

	if _, ok := flip.SharedSide(); !ok {
		return badInput(decl.Pos, "flip[%d] triangles do not share exactly one side", decl.Index)
	}

	if sb.points != nil && !sb.isParallelogram(&flip) {
		sb.seed.DroppedFlips++
		return nil
	}

	sb.seed.Flips = append(sb.seed.Flips, flip)
	return nil
}

// isParallelogram returns true if triangles {p,q,r} and {p,q,s} tile a parallelogram, i.e. r + s == p + q.
func (sb *seedBuilder) isParallelogram(flip *libnodal.Flip) bool {
	node, ok := flip.NodeCell()
	if !ok {
		return false
	}
	p, r, q, s := sb.points[node.Pts[0]], sb.points[node.Pts[1]], sb.points[node.Pts[2]], sb.points[node.Pts[3]]
	return r[0]+s[0] == p[0]+q[0] && r[1]+s[1] == p[1]+q[1]
}
