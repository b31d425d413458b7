package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

type nodeEntry struct {
	ID  int64
	Lat float64
	Lon float64
}

type Coordinate struct {
	Lat float64
	Lon float64
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func encodeNodeBucket(entries []nodeEntry) ([]byte, error) {
	bb, err := binary.Marshal(entries)
	if err != nil {
		return nil, err
	}
	var bbCompressed []byte
	bbCompressed, err = zstd.Compress(bbCompressed, bb)
	if err != nil {
		return nil, err
	}
	return bbCompressed, nil
}

func decodeNodeBucket(bbCompressed []byte) ([]nodeEntry, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return nil, err
	}
	var entries []nodeEntry
	if err := binary.Unmarshal(bb, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
