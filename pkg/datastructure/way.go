package datastructure

import (
	"routegraph/pkg/storage"
)

const (
	WayHasAccess uint8 = 1 << 0
	WayOneway    uint8 = 1 << 1
	WayArea      uint8 = 1 << 2
)

// Point is one geographic position on a way. ID is 0 for anonymous shape
// points that never participate in routing.
type Point struct {
	ID  int64
	Lat float64
	Lon float64
}

// Way is an ordered polyline (or closed polygon) of points together with the
// attributes the route graph needs.
type Way struct {
	ID       int64
	Type     int32
	Flags    uint8
	MaxSpeed uint8
	Nodes    []Point
}

func (w *Way) HasAccess() bool {
	return w.Flags&WayHasAccess != 0
}

func (w *Way) IsOneway() bool {
	return w.Flags&WayOneway != 0
}

func (w *Way) IsArea() bool {
	return w.Flags&WayArea != 0
}

// IsClosed reports whether first and last point share a node id.
func (w *Way) IsClosed() bool {
	if len(w.Nodes) == 0 {
		return false
	}
	return w.Nodes[0].ID == w.Nodes[len(w.Nodes)-1].ID
}

func (w *Way) Write(writer *storage.FileWriter) error {
	if err := writer.WriteInt64(w.ID); err != nil {
		return err
	}
	if err := writer.WriteInt32(w.Type); err != nil {
		return err
	}
	if err := writer.WriteUint8(w.Flags); err != nil {
		return err
	}
	if err := writer.WriteUint8(w.MaxSpeed); err != nil {
		return err
	}
	if err := writer.WriteUint32(uint32(len(w.Nodes))); err != nil {
		return err
	}
	for _, node := range w.Nodes {
		if err := writer.WriteInt64(node.ID); err != nil {
			return err
		}
		if err := writer.WriteFloat64(node.Lat); err != nil {
			return err
		}
		if err := writer.WriteFloat64(node.Lon); err != nil {
			return err
		}
	}
	return nil
}

func (w *Way) Read(scanner *storage.FileScanner) error {
	var err error
	if w.ID, err = scanner.ReadInt64(); err != nil {
		return err
	}
	if w.Type, err = scanner.ReadInt32(); err != nil {
		return err
	}
	if w.Flags, err = scanner.ReadUint8(); err != nil {
		return err
	}
	if w.MaxSpeed, err = scanner.ReadUint8(); err != nil {
		return err
	}
	nodeCount, err := scanner.ReadUint32()
	if err != nil {
		return err
	}
	w.Nodes = make([]Point, nodeCount)
	for i := range w.Nodes {
		if w.Nodes[i].ID, err = scanner.ReadInt64(); err != nil {
			return err
		}
		if w.Nodes[i].Lat, err = scanner.ReadFloat64(); err != nil {
			return err
		}
		if w.Nodes[i].Lon, err = scanner.ReadFloat64(); err != nil {
			return err
		}
	}
	return nil
}
