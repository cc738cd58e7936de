package nodal3

import (
	"github.com/pkg/errors"
)

const (

	// MinGenus and MaxGenus bound (exclusively) the genus an enumeration may start from.
	MinGenus = 3
	MaxGenus = 9

	// HashSep separates the counts of a categorizing hash ("L:B:E:S").
	HashSep = ":"
)

// EnumOpts specifies params for a skeleton enumeration run.
type EnumOpts struct {
	Genus     int    // interior point count of the input triangulations
	InputPath string // triangulation + flip source; omit or "-" for stdin
	OutDir    string // root of the per-genus output dirs
	FilterDir string // omit to run without an admissible hash filter
}

// Validate checks the preconditions that must hold before any core work starts.
func (opts *EnumOpts) Validate() error {
	if opts.Genus <= MinGenus || opts.Genus >= MaxGenus {
		return errors.Wrapf(ErrBadGenus, "got %d", opts.Genus)
	}
	return nil
}

// NumNodes returns how many descent steps a run of this genus performs.
func (opts *EnumOpts) NumNodes() int {
	return opts.Genus - MinGenus
}

// HashFilter decides whether a categorizing hash is admissible.
type HashFilter interface {

	// Contains returns true if the given categorizing hash is in this filter.
	// An error means the lookup itself failed, not that the hash is absent.
	Contains(hashKey string) (bool, error)
}

// HashSet is a HashFilter holding resources that must be released.
type HashSet interface {
	HashFilter

	// Len returns the number of unique hashes in this set.
	Len() int

	// Close releases this set; Contains() must not be called afterwards.
	Close()
}

// FilterSource loads the admissible hash set for a target genus.
//
// A missing source for a genus is an error (ErrFilterNotFound), never an empty or absent filter.
type FilterSource interface {
	LoadFilter(genus int) (HashSet, error)
}
