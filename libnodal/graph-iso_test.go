package libnodal_test

import (
	"testing"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relabel returns X with vertex v renamed to perm[v]
func relabel(t testing.TB, X *libnodal.Graph, perm []libnodal.VtxID) *libnodal.Graph {
	ends := make([][2]libnodal.VtxID, 0, X.NumEdges())
	for _, e := range X.Edges() {
		b := e.B
		if b != libnodal.Boundary {
			b = perm[b]
		}
		ends = append(ends, [2]libnodal.VtxID{b, perm[e.A]})
	}
	return mustGraph(t, X.NumVerts(), ends...)
}

func TestIsomorphicRelabel(t *testing.T) {
	X := scenarioBridge(t)
	Y := relabel(t, X, []libnodal.VtxID{3, 1, 0, 2})
	Z := relabel(t, Y, []libnodal.VtxID{2, 0, 3, 1})

	for _, G := range []*libnodal.Graph{X, Y, Z} {
		assert.True(t, G.IsIsomorphic(G))
	}
	assert.True(t, X.IsIsomorphic(Y))
	assert.True(t, Y.IsIsomorphic(X))
	assert.True(t, Y.IsIsomorphic(Z))
	assert.True(t, X.IsIsomorphic(Z))
	assert.Equal(t, X.CategorizingHash(), Z.CategorizingHash())

	assert.False(t, X.IsIsomorphic(nil))
}

func TestIsomorphicSameHashDiffers(t *testing.T) {
	K33 := mustGraph(t, 6,
		[2]libnodal.VtxID{0, 3}, [2]libnodal.VtxID{0, 4}, [2]libnodal.VtxID{0, 5},
		[2]libnodal.VtxID{1, 3}, [2]libnodal.VtxID{1, 4}, [2]libnodal.VtxID{1, 5},
		[2]libnodal.VtxID{2, 3}, [2]libnodal.VtxID{2, 4}, [2]libnodal.VtxID{2, 5},
	)
	prism := mustGraph(t, 6,
		[2]libnodal.VtxID{0, 1}, [2]libnodal.VtxID{1, 2}, [2]libnodal.VtxID{2, 0},
		[2]libnodal.VtxID{3, 4}, [2]libnodal.VtxID{4, 5}, [2]libnodal.VtxID{5, 3},
		[2]libnodal.VtxID{0, 3}, [2]libnodal.VtxID{1, 4}, [2]libnodal.VtxID{2, 5},
	)
	require.NoError(t, K33.CheckTrivalent())
	require.NoError(t, prism.CheckTrivalent())

	assert.Equal(t, "0:0:0:0", K33.CategorizingHash())
	assert.Equal(t, K33.CategorizingHash(), prism.CategorizingHash())
	assert.False(t, K33.IsIsomorphic(prism))
	assert.False(t, prism.IsIsomorphic(K33))
	assert.True(t, prism.IsIsomorphic(relabel(t, prism, []libnodal.VtxID{5, 3, 4, 2, 0, 1})))
}

func TestIsomorphicDifferentHash(t *testing.T) {
	loop := mustGraph(t, 1, [2]libnodal.VtxID{0, 0}, [2]libnodal.VtxID{0, B})
	legs := mustGraph(t, 1, [2]libnodal.VtxID{0, B}, [2]libnodal.VtxID{0, B}, [2]libnodal.VtxID{0, B})
	assert.False(t, loop.IsIsomorphic(legs))
}

func TestBiEdgePairDeduped(t *testing.T) {
	X := mustGraph(t, 2,
		[2]libnodal.VtxID{0, 1}, [2]libnodal.VtxID{0, 1},
		[2]libnodal.VtxID{0, B}, [2]libnodal.VtxID{1, B},
	)
	Y := mustGraph(t, 2,
		[2]libnodal.VtxID{1, B}, [2]libnodal.VtxID{1, 0},
		[2]libnodal.VtxID{0, 1}, [2]libnodal.VtxID{B, 0},
	)
	assert.Equal(t, "0:0:2:2", X.CategorizingHash())
	assert.Equal(t, "0:0:2:2", Y.CategorizingHash())
	assert.True(t, X.IsIsomorphic(Y))

	cat := libnodal.NewBuckets()
	assert.True(t, cat.TryAddGraph(X, nil))
	assert.False(t, cat.TryAddGraph(Y, nil))
	assert.Equal(t, 1, cat.NumEntries())
	assert.Equal(t, 1, cat.NumDupes())
	assert.Same(t, X, cat.Entries("0:0:2:2")[0].Graph)
}
