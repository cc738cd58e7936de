package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/pkg/errors"
)

var (
	kSkeleton    = []byte("Skeleton: ")
	kSubdivision = []byte("Subdivision: ")
	kNewline     = []byte("\n")
)

// WriteBuckets writes each bucket of cat in key order:
//
//	<loops>:<bridges>:<bi-edges>:<sprawling>
//	Skeleton: <graph>
//	Subdivision: <subdivision>
//	...
//	<blank line>
func WriteBuckets(w io.Writer, cat *libnodal.Buckets) error {
	out := bufio.NewWriter(w)

	cat.Range(func(key string, entries []libnodal.Entry) error {
		out.WriteString(key)
		out.Write(kNewline)
		for _, entry := range entries {
			out.Write(kSkeleton)
			entry.Graph.WriteAsString(out)
			out.Write(kNewline)
			out.Write(kSubdivision)
			entry.Subd.WriteAsString(out)
			out.Write(kNewline)
		}
		out.Write(kNewline)
		return nil
	})

	// bufio.Writer keeps the first write error and reports it here
	return out.Flush()
}

// DirWriter writes genus g to <OutDir>/genus<g>/from_<Source>, replacing any previous file.
type DirWriter struct {
	OutDir string
	Source string // base name of the triangulation input
}

// BatchPath returns the file that WriteBatch writes the given genus to.
func (dw *DirWriter) BatchPath(genus int) string {
	return filepath.Join(dw.OutDir, fmt.Sprintf("genus%d", genus), "from_"+dw.Source)
}

func (dw *DirWriter) WriteBatch(genus int, cat *libnodal.Buckets) error {
	pathname := dw.BatchPath(genus)
	if err := os.MkdirAll(filepath.Dir(pathname), 0755); err != nil {
		return errors.Wrapf(err, "creating dir for %s", pathname)
	}

	file, err := os.Create(pathname)
	if err != nil {
		return errors.Wrapf(err, "creating %s", pathname)
	}

	err = WriteBuckets(file, cat)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", pathname)
	}
	return nil
}
