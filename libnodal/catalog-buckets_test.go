package libnodal_test

import (
	"errors"
	"testing"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeStrip(t *testing.T) {
	root, flips := gridTriangulation(t, 5, 2)
	subds := descend(t, root, flips, 1)
	require.Len(t, subds, 10)

	cat, err := libnodal.Dedupe(subds, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0:0:0:10", "0:0:0:12"}, cat.Keys())
	assert.Equal(t, 2, cat.NumKeys())
	assert.Equal(t, 3, cat.NumEntries())
	assert.Equal(t, 7, cat.NumDupes())
	assert.Equal(t, 0, cat.NumFiltered())
	assert.Len(t, cat.Entries("0:0:0:10"), 1)
	assert.Len(t, cat.Entries("0:0:0:12"), 2)
	assert.Nil(t, cat.Entries("1:0:0:2"))

	// first witness wins
	assert.Same(t, subds[0], cat.Entries("0:0:0:10")[0].Subd)
}

func TestDedupeMaximal(t *testing.T) {
	root, flips := gridTriangulation(t, 3, 3)
	subds := descend(t, root, flips, 2)

	cat, err := libnodal.Dedupe(subds, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0:0:0:10", "0:0:0:8", "0:0:0:9", "0:1:0:10"}, cat.Keys())
	assert.Equal(t, 7, cat.NumEntries())

	// every bucket is pairwise non-isomorphic
	cat.Range(func(key string, entries []libnodal.Entry) error {
		for i := range entries {
			assert.Equal(t, key, entries[i].Graph.CategorizingHash())
			for j := i + 1; j < len(entries); j++ {
				assert.False(t, entries[i].Graph.IsIsomorphic(entries[j].Graph))
			}
		}
		return nil
	})

	// every input is represented
	for _, subd := range subds {
		X, err := libnodal.NewSkeleton(subd)
		require.NoError(t, err)
		found := false
		for _, entry := range cat.Entries(X.CategorizingHash()) {
			found = found || entry.Graph.IsIsomorphic(X)
		}
		assert.True(t, found)
	}
}

func TestDedupeFilter(t *testing.T) {
	root, flips := gridTriangulation(t, 5, 2)
	subds := descend(t, root, flips, 1)

	cat, err := libnodal.Dedupe(subds, hashFilter{"0:0:0:12": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"0:0:0:12"}, cat.Keys())
	assert.Equal(t, 2, cat.NumEntries())
	assert.Equal(t, 4, cat.NumFiltered())

	cat, err = libnodal.Dedupe(subds, hashFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, cat.NumKeys())
	assert.Equal(t, 10, cat.NumFiltered())
}

func TestDedupeFilterFails(t *testing.T) {
	root, flips := gridTriangulation(t, 5, 2)
	subds := descend(t, root, flips, 1)

	errLookup := errors.New("lookup failed")
	cat, err := libnodal.Dedupe(subds, brokenFilter{err: errLookup})
	require.ErrorIs(t, err, errLookup)
	assert.Nil(t, cat)
}

func TestDedupeBadSubdivision(t *testing.T) {
	square, _ := gridTriangulation(t, 1, 1)
	face, err := libnodal.NewSubdivision([]libnodal.Cell{libnodal.NewFace(0, 1, 3, 2)})
	require.NoError(t, err)

	_, err = libnodal.Dedupe([]*libnodal.Subdivision{square, face}, nil)
	require.ErrorIs(t, err, nodal3.ErrNotTrivalent)
	assert.Contains(t, err.Error(), "subdivision 1")
}

func TestBucketsRangeStops(t *testing.T) {
	cat := libnodal.NewBuckets()
	cat.TryAddGraph(mustGraph(t, 1, [2]libnodal.VtxID{0, 0}, [2]libnodal.VtxID{0, B}), nil)
	cat.TryAddGraph(mustGraph(t, 1, [2]libnodal.VtxID{0, B}, [2]libnodal.VtxID{0, B}, [2]libnodal.VtxID{0, B}), nil)
	require.Equal(t, []string{"0:0:0:3", "1:0:0:1"}, cat.Keys())

	errStop := errors.New("stop")
	visited := 0
	err := cat.Range(func(key string, entries []libnodal.Entry) error {
		visited++
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, visited)
	assert.False(t, cat.TryAddGraph(nil, nil))
}
