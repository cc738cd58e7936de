package hashset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2x3systems/nodal3/nodal3"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// Set is an in-memory LSM set of categorizing hashes.
//
// The zero value is ready to use; call Close() when done.
type Set struct {
	db    *badger.DB
	count int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{}
}

func (set *Set) autoOpen() error {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			return errors.Wrap(err, "opening hash set")
		}
	}
	return nil
}

// TryAdd adds the given key if it is not already present and returns true if it was added.
func (set *Set) TryAdd(key []byte) (bool, error) {
	if err := set.autoOpen(); err != nil {
		return false, err
	}

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil // already present
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, err
	}
	if added {
		set.count++
	}
	return added, nil
}

// Contains returns true if the given hash was added to this set.
func (set *Set) Contains(hashKey string) (bool, error) {
	if set.db == nil {
		return false, nil
	}

	found := false
	err := set.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(hashKey))
		switch err {
		case nil:
			found = true
		case badger.ErrKeyNotFound:
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "looking up hash %q", hashKey)
	}
	return found, nil
}

// Len returns the number of unique keys added.
func (set *Set) Len() int {
	return set.count
}

func (set *Set) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}

// LoadFile reads one hash per line into a new Set.  Blank lines and lines starting with '#' are skipped.
func LoadFile(pathname string) (*Set, error) {
	file, err := os.Open(pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(nodal3.ErrFilterNotFound, pathname)
		}
		return nil, err
	}
	defer file.Close()

	set := NewSet()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err = set.TryAdd([]byte(line)); err != nil {
			set.Close()
			return nil, err
		}
	}
	if err = scanner.Err(); err != nil {
		set.Close()
		return nil, errors.Wrapf(err, "reading %s", pathname)
	}

	return set, nil
}

// DirSource loads admissible hash filters from files named genus<g>.txt in Dir.
type DirSource struct {
	Dir string
}

// FilterPath returns the file holding the admissible hashes of the given genus.
func (src DirSource) FilterPath(genus int) string {
	return filepath.Join(src.Dir, fmt.Sprintf("genus%d.txt", genus))
}

func (src DirSource) LoadFilter(genus int) (nodal3.HashSet, error) {
	set, err := LoadFile(src.FilterPath(genus))
	if err != nil {
		return nil, err
	}
	return set, nil
}
