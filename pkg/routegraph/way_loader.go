package routegraph

import (
	"fmt"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/index"
	"routegraph/pkg/storage"
)

// loadWays random-accesses one block's ways through the offset index. The
// scanner position is restored on return so the caller's sequential reads
// are unaffected.
func (b *Builder) loadWays(scanner *storage.FileScanner, wayIndex *index.NumericIndex, wayIDs []int64) ([]*datastructure.Way, error) {
	offsets, err := wayIndex.GetOffsets(wayIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexLookup, err)
	}

	oldPos := scanner.GetPos()

	ways := make([]*datastructure.Way, 0, len(offsets))
	for _, offset := range offsets {
		scanner.SetPos(offset)

		way := &datastructure.Way{}
		if err := way.Read(scanner); err != nil {
			return nil, fmt.Errorf("%w: way at offset %d: %w", ErrDeserialize, offset, err)
		}
		ways = append(ways, way)
	}

	scanner.SetPos(oldPos)

	return ways, nil
}
