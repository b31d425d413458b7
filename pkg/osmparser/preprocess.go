package osmparser

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/index"
	"routegraph/pkg/kv"
	"routegraph/pkg/storage"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// Preprocessor converts an .osm.pbf extract into the binary inputs of the
// route graph stage: ways.dat, rawrels.dat and way.idx. Node coordinates are
// staged in the kv store so the way pass never holds the full node set in
// memory.
type Preprocessor struct {
	typeConfig  *datastructure.TypeConfig
	nodes       *kv.NodeStore
	neededNodes map[int64]struct{}
}

func NewPreprocessor(typeConfig *datastructure.TypeConfig, nodes *kv.NodeStore) *Preprocessor {
	return &Preprocessor{
		typeConfig:  typeConfig,
		nodes:       nodes,
		neededNodes: make(map[int64]struct{}),
	}
}

// Run performs two sequential scans of the PBF. The first collects the node
// ids used by accepted ways and writes rawrels.dat; the second stores node
// coordinates and writes ways.dat together with the way offset index.
func (p *Preprocessor) Run(mapFile, destinationDirectory string) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return fmt.Errorf("cannot open '%s': %w", mapFile, err)
	}
	defer f.Close()

	log.Printf("scanning '%s' for ways and restriction relations", mapFile)
	if err := p.scanWaysAndRelations(f, destinationDirectory); err != nil {
		return err
	}

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}

	log.Printf("writing way data")
	if err := p.writeWayData(f, destinationDirectory); err != nil {
		return err
	}

	return nil
}

func (p *Preprocessor) wayTypeID(way *osm.Way) int32 {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return datastructure.TypeIgnore
	}
	return p.typeConfig.GetWayTypeID(highway)
}

func (p *Preprocessor) scanWaysAndRelations(f *os.File, destinationDirectory string) error {
	relWriter, err := storage.CreateFileWriter(filepath.Join(destinationDirectory, storage.RAWRELS_FILE_NAME))
	if err != nil {
		return err
	}

	// Count placeholder, patched below.
	if err := relWriter.WriteUint32(0); err != nil {
		relWriter.CloseFailsafe()
		return err
	}

	relCount := uint32(0)
	countWays := 0

	scanner := osmpbf.New(context.Background(), f, 1)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Way:
			if len(o.Nodes) < 2 {
				continue
			}
			if p.wayTypeID(o) == datastructure.TypeIgnore {
				continue
			}
			if (countWays+1)%50000 == 0 {
				log.Printf("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			for _, node := range o.Nodes {
				p.neededNodes[int64(node.ID)] = struct{}{}
			}
		case *osm.Relation:
			typeName := restrictionTypeName(o)
			if typeName == "" {
				continue
			}
			typeID := p.typeConfig.GetRelationTypeID(typeName)
			if typeID == datastructure.TypeIgnore {
				continue
			}

			relation := datastructure.RawRelation{
				ID:   int64(o.ID),
				Type: typeID,
			}
			for _, member := range o.Members {
				var kind datastructure.MemberKind
				switch member.Type {
				case osm.TypeNode:
					kind = datastructure.MemberNode
				case osm.TypeWay:
					kind = datastructure.MemberWay
				case osm.TypeRelation:
					kind = datastructure.MemberRelation
				default:
					continue
				}
				relation.Members = append(relation.Members, datastructure.RelationMember{
					Kind: kind,
					ID:   member.Ref,
					Role: member.Role,
				})
			}

			if err := relation.Write(relWriter); err != nil {
				relWriter.CloseFailsafe()
				return err
			}
			relCount++
		}
	}
	if err := scanner.Err(); err != nil {
		relWriter.CloseFailsafe()
		return fmt.Errorf("scanning '%s': %w", f.Name(), err)
	}

	if err := relWriter.SetPos(0); err != nil {
		relWriter.CloseFailsafe()
		return err
	}
	if err := relWriter.WriteUint32(relCount); err != nil {
		relWriter.CloseFailsafe()
		return err
	}
	if err := relWriter.Close(); err != nil {
		return err
	}

	log.Printf("%d ways accepted, %d restriction relations written", countWays, relCount)
	return nil
}

func (p *Preprocessor) writeWayData(f *os.File, destinationDirectory string) error {
	wayWriter, err := storage.CreateFileWriter(filepath.Join(destinationDirectory, storage.WAYS_FILE_NAME))
	if err != nil {
		return err
	}

	if err := wayWriter.WriteUint32(0); err != nil {
		wayWriter.CloseFailsafe()
		return err
	}

	wayCount := uint32(0)
	countNodes := 0
	nodesFlushed := false
	indexEntries := make([]index.Entry, 0)

	scanner := osmpbf.New(context.Background(), f, 1)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				log.Printf("storing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++

			if _, ok := p.neededNodes[int64(o.ID)]; !ok {
				continue
			}
			if err := p.nodes.Put(int64(o.ID), o.Lat, o.Lon); err != nil {
				wayWriter.CloseFailsafe()
				return err
			}
		case *osm.Way:
			// Nodes precede ways in the file; make every staged
			// coordinate visible before the first lookup.
			if !nodesFlushed {
				if err := p.nodes.Flush(); err != nil {
					wayWriter.CloseFailsafe()
					return err
				}
				nodesFlushed = true
			}

			way, err := p.buildWay(o)
			if err != nil {
				wayWriter.CloseFailsafe()
				return err
			}
			if way == nil {
				continue
			}

			offset, err := wayWriter.GetPos()
			if err != nil {
				wayWriter.CloseFailsafe()
				return err
			}
			if err := way.Write(wayWriter); err != nil {
				wayWriter.CloseFailsafe()
				return err
			}
			indexEntries = append(indexEntries, index.Entry{ID: way.ID, Offset: offset})
			wayCount++
		}
	}
	if err := scanner.Err(); err != nil {
		wayWriter.CloseFailsafe()
		return fmt.Errorf("scanning '%s': %w", f.Name(), err)
	}

	if err := wayWriter.SetPos(0); err != nil {
		wayWriter.CloseFailsafe()
		return err
	}
	if err := wayWriter.WriteUint32(wayCount); err != nil {
		wayWriter.CloseFailsafe()
		return err
	}
	if err := wayWriter.Close(); err != nil {
		return err
	}

	if err := index.WriteIndex(filepath.Join(destinationDirectory, storage.WAY_INDEX_NAME), indexEntries); err != nil {
		return err
	}

	log.Printf("%d ways written", wayCount)
	return nil
}

// buildWay resolves an accepted OSM way into a ways.dat record. Ways with
// unresolvable nodes are dropped with a log line; a nil, nil return means
// the way was skipped.
func (p *Preprocessor) buildWay(o *osm.Way) (*datastructure.Way, error) {
	if len(o.Nodes) < 2 {
		return nil, nil
	}
	typeID := p.wayTypeID(o)
	if typeID == datastructure.TypeIgnore {
		return nil, nil
	}

	var flags uint8
	if hasAccess(o) {
		flags |= datastructure.WayHasAccess
	}
	if isOneway(o) {
		flags |= datastructure.WayOneway
	}
	if isArea(o) {
		flags |= datastructure.WayArea
	}

	maxSpeed := parseMaxSpeed(o)
	if maxSpeed == 0 {
		maxSpeed = float64(p.typeConfig.DefaultMaxSpeed(typeID))
	}
	if maxSpeed > 255 {
		maxSpeed = 255
	}

	way := &datastructure.Way{
		ID:       int64(o.ID),
		Type:     typeID,
		Flags:    flags,
		MaxSpeed: uint8(maxSpeed),
		Nodes:    make([]datastructure.Point, 0, len(o.Nodes)),
	}

	for _, wayNode := range o.Nodes {
		coord, err := p.nodes.Get(int64(wayNode.ID))
		if err != nil {
			log.Printf("dropping way %d: node %d has no coordinates", o.ID, wayNode.ID)
			return nil, nil
		}
		way.Nodes = append(way.Nodes, datastructure.Point{
			ID:  int64(wayNode.ID),
			Lat: coord.Lat,
			Lon: coord.Lon,
		})
	}

	// Area polygons are stored without the repeated closing node; the ring
	// wraps around implicitly.
	if way.IsArea() && len(way.Nodes) > 1 && way.Nodes[0].ID == way.Nodes[len(way.Nodes)-1].ID {
		way.Nodes = way.Nodes[:len(way.Nodes)-1]
	}

	return way, nil
}
