package libnodal_test

import (
	"testing"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/stretchr/testify/require"
)

// gridTriangulation triangulates the lattice rectangle [0,a]x[0,b], cutting each unit square along the diagonal from
// its lower-left corner.  Point (i,j) is numbered j*(a+1)+i.  One flip per square (in square order) merges its two
// triangles back into the square.
func gridTriangulation(t testing.TB, a, b int) (*libnodal.Subdivision, []libnodal.Flip) {
	t.Helper()

	id := func(i, j int) libnodal.PointID {
		return libnodal.PointID(j*(a+1) + i)
	}

	var cells []libnodal.Cell
	var flips []libnodal.Flip
	for j := 0; j < b; j++ {
		for i := 0; i < a; i++ {
			p0, p1, p2, p3 := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			t1 := libnodal.NewTriangle(p0, p1, p2)
			t2 := libnodal.NewTriangle(p0, p2, p3)
			cells = append(cells, t1, t2)
			flips = append(flips, libnodal.Flip{
				ID:   len(flips),
				Pair: [2]libnodal.Cell{t1, t2},
			})
		}
	}

	subd, err := libnodal.NewSubdivision(cells)
	require.NoError(t, err)
	return subd, flips
}

// descend applies every flip to each subdivision of a single-root generation, numSteps times.
func descend(t testing.TB, root *libnodal.Subdivision, flips []libnodal.Flip, numSteps int) []*libnodal.Subdivision {
	t.Helper()

	subds := []*libnodal.Subdivision{root}
	prov := libnodal.IdentityProvenance(1)
	for i := 0; i < numSteps; i++ {
		var err error
		subds, prov, err = libnodal.ApplyFlips(subds, flips, prov, 1)
		require.NoError(t, err)
	}
	return subds
}

// interiorBetti returns the first Betti number of X ignoring legs: edges - vertices + components.
func interiorBetti(X *libnodal.Graph) int {
	parent := make([]int, X.NumVerts())
	for i := range parent {
		parent[i] = i
	}
	find := func(v int) int {
		for parent[v] != v {
			v = parent[v]
		}
		return v
	}

	numComponents := X.NumVerts()
	numEdges := 0
	for _, e := range X.Edges() {
		if e.IsLeg() {
			continue
		}
		numEdges++
		ra, rb := find(int(e.A)), find(int(e.B))
		if ra != rb {
			parent[ra] = rb
			numComponents--
		}
	}
	return numEdges - X.NumVerts() + numComponents
}

func mustGraph(t testing.TB, numVtx int, ends ...[2]libnodal.VtxID) *libnodal.Graph {
	t.Helper()
	X, err := libnodal.NewGraph(numVtx, ends)
	require.NoError(t, err)
	return X
}

// hashFilter is a HashFilter over a fixed set of keys
type hashFilter map[string]bool

func (hf hashFilter) Contains(hashKey string) (bool, error) {
	return hf[hashKey], nil
}

// brokenFilter fails every lookup
type brokenFilter struct {
	err error
}

func (bf brokenFilter) Contains(hashKey string) (bool, error) {
	return false, bf.err
}
