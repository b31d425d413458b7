package routegraph

import (
	"fmt"
	"path/filepath"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/storage"
)

func (b *Builder) isRoutable(way *datastructure.Way) bool {
	if way.Type == datastructure.TypeIgnore {
		return false
	}
	if b.typeConfig.GetIgnore(way.Type) {
		return false
	}
	return b.typeConfig.CanBeRoute(way.Type)
}

// readJunctions streams ways.dat once, counting per node how often it is used
// by a routable way. Nodes used at least twice are the junctions of the
// graph. The transient count map is dropped on return.
func (b *Builder) readJunctions() (map[int64]struct{}, error) {
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

	nodeWayCountMap := make(map[int64]int)

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
			nodeWayCountMap[node.ID]++
		}
	}

	junctions := make(map[int64]struct{})
	for nodeID, count := range nodeWayCountMap {
		if count >= 2 {
			junctions[nodeID] = struct{}{}
		}
	}

	return junctions, nil
}
