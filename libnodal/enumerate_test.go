package libnodal_test

import (
	"errors"
	"testing"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchRecorder struct {
	genera  []int
	entries []int
	keys    [][]string
	err     error
}

func (br *batchRecorder) WriteBatch(genus int, cat *libnodal.Buckets) error {
	br.genera = append(br.genera, genus)
	br.entries = append(br.entries, cat.NumEntries())
	br.keys = append(br.keys, cat.Keys())
	return br.err
}

type fakeSet struct {
	hashFilter
	closed bool
}

func (set *fakeSet) Len() int { return len(set.hashFilter) }
func (set *fakeSet) Close()   { set.closed = true }

type fakeSource struct {
	sets map[int]*fakeSet
}

func (src *fakeSource) LoadFilter(genus int) (nodal3.HashSet, error) {
	set, exists := src.sets[genus]
	if !exists {
		return nil, nodal3.ErrFilterNotFound
	}
	return set, nil
}

func stripSeed(t testing.TB) *libnodal.Seed {
	root, flips := gridTriangulation(t, 5, 2)
	return &libnodal.Seed{
		Subdivisions: []*libnodal.Subdivision{root},
		Flips:        flips,
		Provenance:   libnodal.IdentityProvenance(1),
	}
}

func TestEnumerateBadGenus(t *testing.T) {
	for _, genus := range []int{0, 3, 9, 12} {
		out := &batchRecorder{}
		err := libnodal.Enumerate(stripSeed(t), nodal3.EnumOpts{Genus: genus}, nil, out)
		require.ErrorIs(t, err, nodal3.ErrBadGenus)
		assert.Empty(t, out.genera)
	}
}

func TestEnumerateDescends(t *testing.T) {
	out := &batchRecorder{}
	err := libnodal.Enumerate(stripSeed(t), nodal3.EnumOpts{Genus: 5}, nil, out)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, out.genera)
	assert.Equal(t, []int{3, 5}, out.entries)
	assert.Equal(t, []string{"0:0:0:10", "0:0:0:12", "0:0:0:8"}, out.keys[1])

	// a missing provenance defaults to the identity
	seed := stripSeed(t)
	seed.Provenance = libnodal.Provenance{}
	again := &batchRecorder{}
	require.NoError(t, libnodal.Enumerate(seed, nodal3.EnumOpts{Genus: 5}, nil, again))
	assert.Equal(t, out.entries, again.entries)
}

func TestEnumerateFilters(t *testing.T) {
	set := &fakeSet{hashFilter: hashFilter{"0:0:0:12": true}}
	src := &fakeSource{sets: map[int]*fakeSet{3: set}}

	out := &batchRecorder{}
	err := libnodal.Enumerate(stripSeed(t), nodal3.EnumOpts{Genus: 4}, src, out)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, out.genera)
	assert.Equal(t, []int{2}, out.entries)
	assert.True(t, set.closed)

	// genus 4 has no filter
	out = &batchRecorder{}
	err = libnodal.Enumerate(stripSeed(t), nodal3.EnumOpts{Genus: 5}, src, out)
	require.ErrorIs(t, err, nodal3.ErrFilterNotFound)
	assert.Empty(t, out.genera)
}

func TestEnumerateHalts(t *testing.T) {
	errDiskFull := errors.New("disk full")
	out := &batchRecorder{err: errDiskFull}
	err := libnodal.Enumerate(stripSeed(t), nodal3.EnumOpts{Genus: 5}, nil, out)
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, []int{4}, out.genera)

	seed := stripSeed(t)
	seed.Flips[3].Source = 5
	out = &batchRecorder{}
	err = libnodal.Enumerate(seed, nodal3.EnumOpts{Genus: 4}, nil, out)
	require.ErrorIs(t, err, nodal3.ErrBadFlipRef)
	assert.Empty(t, out.genera)
}
