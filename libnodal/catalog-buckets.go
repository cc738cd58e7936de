package libnodal

import (
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
)

// Entry is a skeleton graph together with the subdivision it was derived from.
type Entry struct {
	Graph *Graph
	Subd  *Subdivision
}

type bucket struct {
	entries []Entry
}

// Buckets is a catalog of pairwise non-isomorphic skeletons, grouped by categorizing hash.
//
// Keys are kept sorted so that output order does not depend on insertion order.
type Buckets struct {
	tree        *redblacktree.Tree
	numEntries  int
	numDupes    int
	numFiltered int
}

func NewBuckets() *Buckets {
	return &Buckets{
		tree: redblacktree.NewWithStringComparator(),
	}
}

// TryAddGraph adds X (and the subdivision it came from) unless an isomorphic graph is already in X's bucket.
//
// Returns true if X was added.
func (cat *Buckets) TryAddGraph(X *Graph, subd *Subdivision) bool {
	if X == nil {
		return false
	}

	key := X.CategorizingHash()
	var dst *bucket
	if found, exists := cat.tree.Get(key); exists {
		dst = found.(*bucket)
	} else {
		dst = &bucket{}
		cat.tree.Put(key, dst)
	}

	for _, existing := range dst.entries {
		if existing.Graph.IsIsomorphic(X) {
			cat.numDupes++
			return false
		}
	}

	dst.entries = append(dst.entries, Entry{Graph: X, Subd: subd})
	cat.numEntries++
	return true
}

// NumKeys returns the number of distinct hashes present.
func (cat *Buckets) NumKeys() int {
	return cat.tree.Size()
}

// NumEntries returns the total number of (non-isomorphic) graphs present.
func (cat *Buckets) NumEntries() int {
	return cat.numEntries
}

// NumDupes returns how many graphs were rejected as isomorphic to one already present.
func (cat *Buckets) NumDupes() int {
	return cat.numDupes
}

// NumFiltered returns how many graphs Dedupe skipped because their hash was not admissible.
func (cat *Buckets) NumFiltered() int {
	return cat.numFiltered
}

// Keys returns the hashes present, in sorted order.
func (cat *Buckets) Keys() []string {
	keys := make([]string, 0, cat.tree.Size())
	for _, key := range cat.tree.Keys() {
		keys = append(keys, key.(string))
	}
	return keys
}

// Entries returns the entries of the given bucket in insertion order (nil if the key is absent).
func (cat *Buckets) Entries(key string) []Entry {
	if found, exists := cat.tree.Get(key); exists {
		return found.(*bucket).entries
	}
	return nil
}

// Range calls fn for each bucket in key order, stopping at the first error.
func (cat *Buckets) Range(fn func(key string, entries []Entry) error) error {
	it := cat.tree.Iterator()
	for it.Next() {
		if err := fn(it.Key().(string), it.Value().(*bucket).entries); err != nil {
			return err
		}
	}
	return nil
}

// Dedupe builds the skeleton of each subdivision (in order) and catalogs those not already present up to isomorphism.
//
// If filter is non-nil, graphs whose hash it does not contain are skipped.
// A subdivision whose skeleton cannot be built, or a failed filter lookup, fails the whole call.
func Dedupe(subds []*Subdivision, filter nodal3.HashFilter) (*Buckets, error) {
	cat := NewBuckets()

	for i, subd := range subds {
		X, err := NewSkeleton(subd)
		if err != nil {
			return nil, errors.WithMessagef(err, "subdivision %d", i)
		}
		if filter != nil {
			admissible, err := filter.Contains(X.CategorizingHash())
			if err != nil {
				return nil, errors.WithMessagef(err, "subdivision %d", i)
			}
			if !admissible {
				cat.numFiltered++
				continue
			}
		}
		cat.TryAddGraph(X, subd)
	}

	return cat, nil
}
