package routegraph

import (
	"fmt"
	"path/filepath"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/storage"
)

// readWayEndpoints streams ways.dat a second time and collects, per junction
// node, the ids of the routable ways containing it. Append order is kept; a
// way id appears once per occurrence of the junction inside it, so the
// closing node of a closed way lists that way twice.
func (b *Builder) readWayEndpoints(junctions map[int64]struct{}) (map[int64][]int64, error) {
	filename := filepath.Join(b.parameter.DestinationDirectory, storage.WAYS_FILE_NAME)
	scanner, err := storage.OpenFileScanner(filename, b.parameter.WayDataMemoryMapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputOpen, err)
	}
	defer scanner.Close()

	wayCount, err := scanner.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: number of data entries in '%s': %w", ErrInputRead, filename, err)
	}

	nodeWayMap := make(map[int64][]int64)

	for w := uint32(1); w <= wayCount; w++ {
		b.progress.SetProgress(w, wayCount)

		var way datastructure.Way
		if err := way.Read(scanner); err != nil {
			return nil, fmt.Errorf("%w: data entry %d of %d in '%s': %w", ErrInputRead, w, wayCount, filename, err)
		}

		if !b.isRoutable(&way) {
			continue
		}

		for _, node := range way.Nodes {
			if _, ok := junctions[node.ID]; ok {
				nodeWayMap[node.ID] = append(nodeWayMap[node.ID], way.ID)
			}
		}
	}

	return nodeWayMap, nil
}
