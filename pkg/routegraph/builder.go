package routegraph

import (
	"fmt"
	"path/filepath"
	"sort"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/geo"
	"routegraph/pkg/index"
	"routegraph/pkg/storage"
)

func copyFlags(way *datastructure.Way) uint8 {
	var flags uint8
	if way.HasAccess() {
		flags |= datastructure.WayHasAccess
	}
	return flags
}

// Builder runs the route graph stage: it folds ways.dat, rawrels.dat and
// way.idx into the route.dat stream of route nodes. One Builder performs one
// run; it is not safe for concurrent use.
type Builder struct {
	parameter  ImportParameter
	progress   Progress
	typeConfig *datastructure.TypeConfig

	writtenRouteNodeCount uint32
	writtenRoutePathCount uint32
}

func NewBuilder(parameter ImportParameter, progress Progress, typeConfig *datastructure.TypeConfig) *Builder {
	return &Builder{
		parameter:  parameter,
		progress:   progress,
		typeConfig: typeConfig,
	}
}

// WrittenRouteNodeCount reports the number of route nodes emitted by the last
// Run.
func (b *Builder) WrittenRouteNodeCount() uint32 {
	return b.writtenRouteNodeCount
}

func (b *Builder) Run() error {
	b.writtenRouteNodeCount = 0
	b.writtenRoutePathCount = 0

	b.progress.SetAction("Scanning for restriction relations")
	restrictions, err := b.readRestrictionRelations()
	if err != nil {
		return err
	}

	b.progress.SetAction("Scanning for junctions")
	junctions, err := b.readJunctions()
	if err != nil {
		return err
	}
	b.progress.Info(fmt.Sprintf("%d junctions found", len(junctions)))

	b.progress.SetAction("Collecting ways intersecting junctions")
	nodeWayMap, err := b.readWayEndpoints(junctions)
	if err != nil {
		return err
	}
	junctions = nil
	b.progress.Info(fmt.Sprintf("%d route nodes collected", len(nodeWayMap)))

	wayIndex, err := index.OpenNumericIndex(
		filepath.Join(b.parameter.DestinationDirectory, storage.WAY_INDEX_NAME),
		b.parameter.WayIndexCacheSize,
		b.parameter.WayIndexMemoryMapped)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputOpen, err)
	}
	defer wayIndex.Close()

	b.progress.SetAction("Writing route nodes")

	scanner, err := storage.OpenFileScanner(
		filepath.Join(b.parameter.DestinationDirectory, storage.WAYS_FILE_NAME),
		b.parameter.WayDataMemoryMapped)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputOpen, err)
	}
	defer scanner.Close()

	writer, err := storage.CreateFileWriter(
		filepath.Join(b.parameter.DestinationDirectory, storage.ROUTE_FILE_NAME))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteIO, err)
	}

	if err := b.writeRouteNodes(scanner, writer, wayIndex, nodeWayMap, restrictions); err != nil {
		writer.CloseFailsafe()
		return err
	}

	if err := writer.SetPos(0); err != nil {
		writer.CloseFailsafe()
		return fmt.Errorf("%w: %w", ErrWriteIO, err)
	}
	if err := writer.WriteUint32(b.writtenRouteNodeCount); err != nil {
		writer.CloseFailsafe()
		return fmt.Errorf("%w: %w", ErrWriteIO, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteIO, err)
	}

	b.progress.Info(fmt.Sprintf("%d route node(s) and %d path(s) written",
		b.writtenRouteNodeCount, b.writtenRoutePathCount))

	return nil
}

func (b *Builder) writeRouteNodes(scanner *storage.FileScanner, writer *storage.FileWriter,
	wayIndex *index.NumericIndex, nodeWayMap map[int64][]int64,
	restrictions map[int64][]datastructure.Restriction) error {

	// Header placeholder, patched after the last node is written.
	if err := writer.WriteUint32(0); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteIO, err)
	}

	junctionIDs := make([]int64, 0, len(nodeWayMap))
	for nodeID := range nodeWayMap {
		junctionIDs = append(junctionIDs, nodeID)
	}
	sort.Slice(junctionIDs, func(i, j int) bool { return junctionIDs[i] < junctionIDs[j] })

	blockSize := b.parameter.RouteNodeBlockSize
	handledRouteNodeCount := uint32(0)

	for blockStart := 0; blockStart < len(junctionIDs); blockStart += blockSize {
		blockEnd := blockStart + blockSize
		if blockEnd > len(junctionIDs) {
			blockEnd = len(junctionIDs)
		}
		block := junctionIDs[blockStart:blockEnd]

		wayIDSet := make(map[int64]struct{})
		for _, junctionID := range block {
			for _, wayID := range nodeWayMap[junctionID] {
				wayIDSet[wayID] = struct{}{}
			}
		}
		if len(wayIDSet) == 0 {
			continue
		}

		wayIDs := make([]int64, 0, len(wayIDSet))
		for wayID := range wayIDSet {
			wayIDs = append(wayIDs, wayID)
		}
		sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

		ways, err := b.loadWays(scanner, wayIndex, wayIDs)
		if err != nil {
			return err
		}

		waysMap := make(map[int64]*datastructure.Way, len(ways))
		for _, way := range ways {
			waysMap[way.ID] = way
		}

		for _, junctionID := range block {
			handledRouteNodeCount++
			b.progress.SetProgress(handledRouteNodeCount, uint32(len(nodeWayMap)))

			if len(nodeWayMap[junctionID]) == 0 {
				continue
			}

			routeNode := b.buildRouteNode(junctionID, nodeWayMap, waysMap, restrictions[junctionID])

			if err := routeNode.Write(writer); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteIO, err)
			}
			b.writtenRouteNodeCount++
			b.writtenRoutePathCount += uint32(len(routeNode.Paths))
		}
	}

	return nil
}

// buildRouteNode emits the route node for one junction: the ascending list of
// incident way ids, one path per reachable neighbour junction along each way,
// and the excludes derived from the junction's turn restrictions.
func (b *Builder) buildRouteNode(junctionID int64, nodeWayMap map[int64][]int64,
	waysMap map[int64]*datastructure.Way,
	restrictions []datastructure.Restriction) *datastructure.RouteNode {

	incident := nodeWayMap[junctionID]
	sort.Slice(incident, func(i, j int) bool { return incident[i] < incident[j] })

	routeNode := &datastructure.RouteNode{ID: junctionID}

	for _, wayID := range incident {
		way, ok := waysMap[wayID]
		if !ok {
			b.progress.Error(fmt.Sprintf("Error while loading way %d (Internal error?)", wayID))
			continue
		}

		// A ring is walked once from the junction's first occurrence; a
		// repeated way id (e.g. the closing node of a closed way) would only
		// repeat the same paths.
		if (way.IsArea() || way.IsClosed()) && len(routeNode.Ways) > 0 &&
			routeNode.Ways[len(routeNode.Ways)-1] == wayID {
			continue
		}

		routeNode.Ways = append(routeNode.Ways, wayID)
		wayIndex := uint32(len(routeNode.Ways) - 1)

		switch {
		case way.IsArea():
			// Areas are implicitly bidirectional; oneway is ignored.
			b.appendCircularPaths(routeNode, way, wayIndex, nodeWayMap, true)
		case way.IsClosed():
			b.appendCircularPaths(routeNode, way, wayIndex, nodeWayMap, !way.IsOneway())
		default:
			b.appendLinearPaths(routeNode, way, wayIndex, nodeWayMap)
		}
	}

	b.resolveExcludes(routeNode, incident, restrictions)

	return routeNode
}

func newPath(way *datastructure.Way, wayIndex uint32, node datastructure.Point, distance float64) datastructure.Path {
	return datastructure.Path{
		ID:       node.ID,
		WayIndex: wayIndex,
		Type:     way.Type,
		MaxSpeed: way.MaxSpeed,
		Flags:    copyFlags(way),
		Lat:      node.Lat,
		Lon:      node.Lon,
		Distance: distance,
	}
}

// appendCircularPaths walks a ring (area or closed way) in both directions
// from the junction's occurrence, accumulating distance until the next
// junction or the full loop. The backward path is suppressed for oneway
// closed ways and when it would duplicate the forward path.
func (b *Builder) appendCircularPaths(routeNode *datastructure.RouteNode, way *datastructure.Way,
	wayIndex uint32, nodeWayMap map[int64][]int64, allowBackward bool) {

	n := len(way.Nodes)
	current := 0
	for current < n && way.Nodes[current].ID != routeNode.ID {
		current++
	}
	if current >= n {
		b.progress.Error(fmt.Sprintf("Junction %d not found on way %d (Internal error?)", routeNode.ID, way.ID))
		return
	}

	isJunction := func(i int) bool {
		_, ok := nodeWayMap[way.Nodes[i].ID]
		return ok
	}

	next := current + 1
	if next >= n {
		next = 0
	}
	distance := geo.CalculateHaversineDistance(
		way.Nodes[current].Lat, way.Nodes[current].Lon,
		way.Nodes[next].Lat, way.Nodes[next].Lon)

	for next != current && !isJunction(next) {
		last := next
		next++
		if next >= n {
			next = 0
		}
		if next != current {
			distance += geo.CalculateHaversineDistance(
				way.Nodes[last].Lat, way.Nodes[last].Lon,
				way.Nodes[next].Lat, way.Nodes[next].Lon)
		}
	}

	if next != current {
		routeNode.Paths = append(routeNode.Paths, newPath(way, wayIndex, way.Nodes[next], distance))
	}

	if !allowBackward {
		return
	}

	prev := current - 1
	if prev < 0 {
		prev = n - 1
	}
	distance = geo.CalculateHaversineDistance(
		way.Nodes[current].Lat, way.Nodes[current].Lon,
		way.Nodes[prev].Lat, way.Nodes[prev].Lon)

	for prev != current && !isJunction(prev) {
		last := prev
		prev--
		if prev < 0 {
			prev = n - 1
		}
		if prev != current {
			distance += geo.CalculateHaversineDistance(
				way.Nodes[last].Lat, way.Nodes[last].Lon,
				way.Nodes[prev].Lat, way.Nodes[prev].Lon)
		}
	}

	if prev != current && prev != next {
		routeNode.Paths = append(routeNode.Paths, newPath(way, wayIndex, way.Nodes[prev], distance))
	}
}

// appendLinearPaths handles open ways. Every occurrence of the junction in
// the way contributes its own backward (unless oneway) and forward path to
// the nearest junction in that direction.
func (b *Builder) appendLinearPaths(routeNode *datastructure.RouteNode, way *datastructure.Way,
	wayIndex uint32, nodeWayMap map[int64][]int64) {

	isJunction := func(i int) bool {
		_, ok := nodeWayMap[way.Nodes[i].ID]
		return ok
	}

	segmentDistance := func(from, to int) float64 {
		distance := 0.0
		for d := from; d < to; d++ {
			distance += geo.CalculateHaversineDistance(
				way.Nodes[d].Lat, way.Nodes[d].Lon,
				way.Nodes[d+1].Lat, way.Nodes[d+1].Lon)
		}
		return distance
	}

	for i := 0; i < len(way.Nodes); i++ {
		if way.Nodes[i].ID != routeNode.ID {
			continue
		}

		if i > 0 && !way.IsOneway() {
			j := i - 1
			for j >= 0 && !isJunction(j) {
				j--
			}
			if j >= 0 {
				routeNode.Paths = append(routeNode.Paths,
					newPath(way, wayIndex, way.Nodes[j], segmentDistance(j, i)))
			}
		}

		if i+1 < len(way.Nodes) {
			j := i + 1
			for j < len(way.Nodes) && !isJunction(j) {
				j++
			}
			if j < len(way.Nodes) {
				routeNode.Paths = append(routeNode.Paths,
					newPath(way, wayIndex, way.Nodes[j], segmentDistance(i, j)))
			}
		}
	}
}

// canTurn evaluates the junction's restriction list for the movement from way
// `from` onto way `to`. An allow restriction for `from` forbids every other
// target; a forbid restriction denies only its own target. With mixed
// allow/forbid entries for the same from way, the last entry scanned sets the
// default.
func canTurn(restrictions []datastructure.Restriction, from, to int64) bool {
	if len(restrictions) == 0 {
		return true
	}

	defaultReturn := true

	for _, r := range restrictions {
		if r.From != from {
			continue
		}
		if r.Kind == datastructure.RestrictionAllow {
			if r.To == to {
				return true
			}
			defaultReturn = false
		} else {
			if r.To == to {
				return false
			}
			defaultReturn = true
		}
	}

	return defaultReturn
}

func (b *Builder) resolveExcludes(routeNode *datastructure.RouteNode, incident []int64,
	restrictions []datastructure.Restriction) {

	if len(restrictions) == 0 {
		return
	}

	for _, sourceWayID := range incident {
		for _, destWayID := range incident {
			if sourceWayID == destWayID {
				continue
			}
			if canTurn(restrictions, sourceWayID, destWayID) {
				continue
			}

			exclude := datastructure.Exclude{SourceWay: sourceWayID}
			for exclude.TargetPath < uint32(len(routeNode.Paths)) &&
				routeNode.Ways[routeNode.Paths[exclude.TargetPath].WayIndex] != destWayID {
				exclude.TargetPath++
			}
			if exclude.TargetPath < uint32(len(routeNode.Paths)) {
				routeNode.Excludes = append(routeNode.Excludes, exclude)
			}
		}
	}
}
