package kv

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

var ErrNodeNotFound = errors.New("node not found")

// Nodes are grouped into buckets of 256 consecutive ids. One bucket is one
// compressed value in the store, so point lookups during way processing hit
// the single-bucket cache almost every time.
const nodeBucketShift = 8

const flushThreshold = 64_000

// NodeStore holds node coordinates for inputs far larger than RAM. Writes are
// accumulated per bucket and committed in batches; reads decompress one
// bucket at a time.
type NodeStore struct {
	db           *pebble.DB
	pending      map[int64][]nodeEntry
	pendingCount int

	cachedBucket int64
	cachedNodes  map[int64]Coordinate
}

func NewNodeStore(dir string) (*NodeStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("cannot open node store '%s': %w", dir, err)
	}
	return &NodeStore{
		db:           db,
		pending:      make(map[int64][]nodeEntry),
		cachedBucket: -1,
	}, nil
}

func bucketKey(bucket int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(bucket))
	return key
}

func (s *NodeStore) Put(id int64, lat, lon float64) error {
	bucket := id >> nodeBucketShift
	s.pending[bucket] = append(s.pending[bucket], nodeEntry{ID: id, Lat: lat, Lon: lon})
	s.pendingCount++
	if s.pendingCount >= flushThreshold {
		return s.Flush()
	}
	return nil
}

// Flush commits every pending bucket. A bucket already present in the store
// is merged, not overwritten.
func (s *NodeStore) Flush() error {
	if s.pendingCount == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for bucket, entries := range s.pending {
		existing, err := s.readBucket(bucket)
		if err != nil && !errors.Is(err, pebble.ErrNotFound) {
			return err
		}
		entries = append(existing, entries...)

		val, err := encodeNodeBucket(entries)
		if err != nil {
			return err
		}
		if err := batch.Set(bucketKey(bucket), val, nil); err != nil {
			return err
		}
	}

	if err := batch.Commit(pebble.NoSync); err != nil {
		return fmt.Errorf("committing node batch: %w", err)
	}

	s.pending = make(map[int64][]nodeEntry)
	s.pendingCount = 0
	s.cachedBucket = -1
	return nil
}

func (s *NodeStore) readBucket(bucket int64) ([]nodeEntry, error) {
	val, closer, err := s.db.Get(bucketKey(bucket))
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	entries, err := decodeNodeBucket(val)
	if err != nil {
		return nil, fmt.Errorf("decoding node bucket %d: %w", bucket, err)
	}
	return entries, nil
}

func (s *NodeStore) Get(id int64) (Coordinate, error) {
	bucket := id >> nodeBucketShift

	if bucket != s.cachedBucket {
		entries, err := s.readBucket(bucket)
		if err != nil {
			if errors.Is(err, pebble.ErrNotFound) {
				return Coordinate{}, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
			}
			return Coordinate{}, err
		}
		s.cachedNodes = make(map[int64]Coordinate, len(entries))
		for _, entry := range entries {
			s.cachedNodes[entry.ID] = NewCoordinate(entry.Lat, entry.Lon)
		}
		s.cachedBucket = bucket
	}

	coord, ok := s.cachedNodes[id]
	if !ok {
		return Coordinate{}, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return coord, nil
}

func (s *NodeStore) Close() error {
	return s.db.Close()
}
