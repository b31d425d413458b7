package routegraph

// ImportParameter carries the stage configuration. The enclosing importer
// fills it once; the stage never mutates it.
type ImportParameter struct {
	// DestinationDirectory contains ways.dat, rawrels.dat and way.idx and
	// receives route.dat.
	DestinationDirectory string

	// WayDataMemoryMapped enables memory-mapped reads of ways.dat.
	WayDataMemoryMapped bool

	// WayIndexCacheSize bounds the number of resolved way offsets kept in
	// memory by the way index.
	WayIndexCacheSize int

	// WayIndexMemoryMapped enables memory-mapped reads of way.idx.
	WayIndexMemoryMapped bool

	// RouteNodeBlockSize is the number of junctions processed per block.
	RouteNodeBlockSize int
}

func DefaultImportParameter(destinationDirectory string) ImportParameter {
	return ImportParameter{
		DestinationDirectory: destinationDirectory,
		WayDataMemoryMapped:  false,
		WayIndexCacheSize:    100_000,
		WayIndexMemoryMapped: false,
		RouteNodeBlockSize:   5000,
	}
}
