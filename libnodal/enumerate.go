package libnodal

import (
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Seed is the parsed starting point of an enumeration: the root triangulations and the flips declared against them.
type Seed struct {
	Subdivisions []*Subdivision
	Flips        []Flip
	Provenance   Provenance
	DroppedFlips int // flips rejected at load time since they do not form a lattice parallelogram
}

// BatchWriter receives the deduplicated skeletons of each genus step.
type BatchWriter interface {
	WriteBatch(genus int, cat *Buckets) error
}

// Enumerate descends from opts.Genus one node at a time: each step applies every flip to the previous generation,
// dedupes the resulting skeletons (filtered by the admissible hashes of that genus when filters is non-nil)
// and hands them to out.
//
// The genus is validated before any work is done.  The first error halts the remaining steps.
func Enumerate(seed *Seed, opts nodal3.EnumOpts, filters nodal3.FilterSource, out BatchWriter) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if seed == nil {
		return errors.Wrap(nodal3.ErrBadInput, "no triangulations")
	}

	numRoots := len(seed.Subdivisions)
	subds, prov := seed.Subdivisions, seed.Provenance
	if prov.Len() == 0 {
		prov = IdentityProvenance(numRoots)
	}

	numNodes := opts.NumNodes()
	for node := 1; node <= numNodes; node++ {
		genus := opts.Genus - node
		klog.Infof("computing genus %d graphs of %d subdivision(s) with %d node(s)", genus, len(subds), node)

		var err error
		subds, prov, err = ApplyFlips(subds, seed.Flips, prov, numRoots)
		if err != nil {
			return errors.WithMessagef(err, "genus %d", genus)
		}

		cat, err := dedupeGenus(subds, genus, filters)
		if err != nil {
			return errors.WithMessagef(err, "genus %d", genus)
		}
		klog.V(2).Infof("genus %d: %d subdivision(s) => %d skeleton(s) in %d bucket(s) (%d dupes, %d filtered)",
			genus, len(subds), cat.NumEntries(), cat.NumKeys(), cat.NumDupes(), cat.NumFiltered())

		if out != nil {
			if err = out.WriteBatch(genus, cat); err != nil {
				return errors.WithMessagef(err, "writing genus %d", genus)
			}
		}
	}

	return nil
}

func dedupeGenus(subds []*Subdivision, genus int, filters nodal3.FilterSource) (*Buckets, error) {
	if filters == nil {
		return Dedupe(subds, nil)
	}

	set, err := filters.LoadFilter(genus)
	if err != nil {
		return nil, err
	}
	defer set.Close()

	klog.V(2).Infof("genus %d: %d admissible hash(es)", genus, set.Len())
	return Dedupe(subds, set)
}
