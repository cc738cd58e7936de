package nodal3

import "errors"

// Errors
var (
	ErrBadGenus       = errors.New("genus must be strictly between 3 and 9")
	ErrBadInput       = errors.New("bad triangulation input")
	ErrBadCell        = errors.New("bad subdivision cell")
	ErrBrokenSides    = errors.New("side is shared by more than two cells")
	ErrBadFlipRef     = errors.New("flip references a triangulation outside the current arena")
	ErrProvenance     = errors.New("provenance does not match generation size")
	ErrNotTrivalent   = errors.New("skeleton vertex does not have degree 3")
	ErrBrokenStrand   = errors.New("strand through node cells does not terminate")
	ErrBadVtxID       = errors.New("bad graph vertex ID")
	ErrBadEdge        = errors.New("bad graph edge")
	ErrFilterNotFound = errors.New("admissible hash filter not found")
)
