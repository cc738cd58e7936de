package libnodal

import (
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
)

// Flip is an elementary move declared against a root triangulation:
// the two adjacent triangles of Pair merge into one node cell (their shared side is dropped).
type Flip struct {
	ID     int     // index within the flip list
	Source int     // index of the root triangulation this flip was declared against
	Pair   [2]Cell // two triangles sharing exactly one side
}

// SharedSide returns the side common to both triangles of the flip.
func (f *Flip) SharedSide() (Side, bool) {
	t0, t1 := f.Pair[0], f.Pair[1]
	if t0.Kind != Cell_Triangle || t1.Kind != Cell_Triangle || len(t0.Pts) != 3 || len(t1.Pts) != 3 {
		return Side{}, false
	}
	var shared Side
	count := 0
	for i := 0; i < 3; i++ {
		if sd := t0.Side(i); t1.SideIndex(sd) >= 0 {
			shared = sd
			count++
		}
	}
	return shared, count == 1
}

// NodeCell returns the node cell [p, r, q, s] that replaces the flip's triangles {p,q,r} and {p,q,s}.
func (f *Flip) NodeCell() (Cell, bool) {
	pq, ok := f.SharedSide()
	if !ok {
		return Cell{}, false
	}
	return NewNodeCell(pq.Lo, apex(f.Pair[0], pq), pq.Hi, apex(f.Pair[1], pq)), true
}

// apex returns the point of triangle t not on side sd.
func apex(t Cell, sd Side) PointID {
	for _, pt := range t.Pts {
		if pt != sd.Lo && pt != sd.Hi {
			return pt
		}
	}
	return -1
}

// Provenance maps each subdivision of a generation back to the arenas it came from.
//
// Parent[i] is the index, within the previous generation, of the subdivision that produced subdivision i.
// Root[i] is the index of the triangulation subdivision i descends from; flips are looked up by it.
type Provenance struct {
	Parent []int
	Root   []int
}

// IdentityProvenance returns the provenance of an initial generation of n triangulations.
func IdentityProvenance(n int) Provenance {
	prov := Provenance{
		Parent: make([]int, n),
		Root:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		prov.Parent[i] = i
		prov.Root[i] = i
	}
	return prov
}

func (prov *Provenance) Len() int {
	return len(prov.Parent)
}

// ApplyFlips produces the next generation: for each subdivision (in order), every flip declared against its root
// triangulation (in flip list order) that still applies yields one child.
//
// generationSize is the size of the arena that Flip.Source indexes (the number of root triangulations).
// A flip referencing outside it fails the whole step before any child is produced.
// A subdivision that no flip applies to simply has no children; a flip that is present but malformed fails the step.
func ApplyFlips(subds []*Subdivision, flips []Flip, prov Provenance, generationSize int) ([]*Subdivision, Provenance, error) {
	var next Provenance

	if len(prov.Parent) != len(subds) || len(prov.Root) != len(subds) {
		return nil, next, errors.Wrapf(nodal3.ErrProvenance, "%d subdivisions, %d parents, %d roots", len(subds), len(prov.Parent), len(prov.Root))
	}

	// Index flips by the triangulation they were declared against, keeping list order.
	bySource := make(map[int][]int, generationSize)
	for fi := range flips {
		src := flips[fi].Source
		if src < 0 || src >= generationSize {
			return nil, next, errors.Wrapf(nodal3.ErrBadFlipRef, "flip %d references triangulation %d (arena size %d)", flips[fi].ID, src, generationSize)
		}
		bySource[src] = append(bySource[src], fi)
	}

	var children []*Subdivision
	for i, subd := range subds {
		root := prov.Root[i]
		for _, fi := range bySource[root] {
			child, applied, err := subd.ApplyFlip(&flips[fi])
			if err != nil {
				return nil, Provenance{}, errors.WithMessagef(err, "subdivision %d", i)
			}
			if !applied {
				continue
			}
			children = append(children, child)
			next.Parent = append(next.Parent, i)
			next.Root = append(next.Root, root)
		}
	}

	return children, next, nil
}
