package datastructure

import (
	"routegraph/pkg/storage"
)

// Path is one outgoing graph edge of a route node. WayIndex points into the
// owning RouteNode's Ways list; Distance is the along-way great-circle sum in
// kilometres between the two junctions.
type Path struct {
	ID       int64
	WayIndex uint32
	Type     int32
	MaxSpeed uint8
	Flags    uint8
	Lat      float64
	Lon      float64
	Distance float64
}

// Exclude denies the turning movement from SourceWay onto the path at index
// TargetPath.
type Exclude struct {
	SourceWay  int64
	TargetPath uint32
}

// RouteNode is the routing graph vertex emitted for one junction.
type RouteNode struct {
	ID       int64
	Ways     []int64
	Paths    []Path
	Excludes []Exclude
}

func (n *RouteNode) Write(writer *storage.FileWriter) error {
	if err := writer.WriteInt64(n.ID); err != nil {
		return err
	}
	if err := writer.WriteUint32(uint32(len(n.Ways))); err != nil {
		return err
	}
	for _, wayID := range n.Ways {
		if err := writer.WriteInt64(wayID); err != nil {
			return err
		}
	}
	if err := writer.WriteUint32(uint32(len(n.Paths))); err != nil {
		return err
	}
	for i := range n.Paths {
		path := &n.Paths[i]
		if err := writer.WriteInt64(path.ID); err != nil {
			return err
		}
		if err := writer.WriteUint32(path.WayIndex); err != nil {
			return err
		}
		if err := writer.WriteInt32(path.Type); err != nil {
			return err
		}
		if err := writer.WriteUint8(path.MaxSpeed); err != nil {
			return err
		}
		if err := writer.WriteUint8(path.Flags); err != nil {
			return err
		}
		if err := writer.WriteFloat64(path.Lat); err != nil {
			return err
		}
		if err := writer.WriteFloat64(path.Lon); err != nil {
			return err
		}
		if err := writer.WriteFloat64(path.Distance); err != nil {
			return err
		}
	}
	if err := writer.WriteUint32(uint32(len(n.Excludes))); err != nil {
		return err
	}
	for _, exclude := range n.Excludes {
		if err := writer.WriteInt64(exclude.SourceWay); err != nil {
			return err
		}
		if err := writer.WriteUint32(exclude.TargetPath); err != nil {
			return err
		}
	}
	return nil
}

func (n *RouteNode) Read(scanner *storage.FileScanner) error {
	var err error
	if n.ID, err = scanner.ReadInt64(); err != nil {
		return err
	}
	wayCount, err := scanner.ReadUint32()
	if err != nil {
		return err
	}
	n.Ways = make([]int64, wayCount)
	for i := range n.Ways {
		if n.Ways[i], err = scanner.ReadInt64(); err != nil {
			return err
		}
	}
	pathCount, err := scanner.ReadUint32()
	if err != nil {
		return err
	}
	n.Paths = make([]Path, pathCount)
	for i := range n.Paths {
		path := &n.Paths[i]
		if path.ID, err = scanner.ReadInt64(); err != nil {
			return err
		}
		if path.WayIndex, err = scanner.ReadUint32(); err != nil {
			return err
		}
		if path.Type, err = scanner.ReadInt32(); err != nil {
			return err
		}
		if path.MaxSpeed, err = scanner.ReadUint8(); err != nil {
			return err
		}
		if path.Flags, err = scanner.ReadUint8(); err != nil {
			return err
		}
		if path.Lat, err = scanner.ReadFloat64(); err != nil {
			return err
		}
		if path.Lon, err = scanner.ReadFloat64(); err != nil {
			return err
		}
		if path.Distance, err = scanner.ReadFloat64(); err != nil {
			return err
		}
	}
	excludeCount, err := scanner.ReadUint32()
	if err != nil {
		return err
	}
	n.Excludes = make([]Exclude, excludeCount)
	for i := range n.Excludes {
		if n.Excludes[i].SourceWay, err = scanner.ReadInt64(); err != nil {
			return err
		}
		if n.Excludes[i].TargetPath, err = scanner.ReadUint32(); err != nil {
			return err
		}
	}
	return nil
}
