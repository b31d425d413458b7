package routegraph

import "errors"

// Stage error kinds. Every kind aborts the stage except the internal
// consistency case, which is logged through the progress sink and skipped.
var (
	ErrInputOpen   = errors.New("cannot open input file")
	ErrInputRead   = errors.New("malformed or truncated record")
	ErrIndexLookup = errors.New("way offset index lookup failed")
	ErrDeserialize = errors.New("record deserialization failed")
	ErrWriteIO     = errors.New("route writer failure")
)
