package index

import (
	"errors"
	"fmt"
	"sort"

	"routegraph/pkg/storage"
)

var ErrIDNotFound = errors.New("id not found in index")

const entrySize = 16 // int64 id + int64 offset

type Entry struct {
	ID     int64
	Offset int64
}

// WriteIndex persists id -> file offset entries as a sorted flat file:
// uint32 count followed by fixed-width (id, offset) records in ascending id
// order, so lookups can binary-search without loading the index.
func WriteIndex(filename string, entries []Entry) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	writer, err := storage.CreateFileWriter(filename)
	if err != nil {
		return err
	}
	if err := writer.WriteUint32(uint32(len(entries))); err != nil {
		writer.CloseFailsafe()
		return fmt.Errorf("writing '%s': %w", filename, err)
	}
	for _, entry := range entries {
		if err := writer.WriteInt64(entry.ID); err != nil {
			writer.CloseFailsafe()
			return fmt.Errorf("writing '%s': %w", filename, err)
		}
		if err := writer.WriteInt64(entry.Offset); err != nil {
			writer.CloseFailsafe()
			return fmt.Errorf("writing '%s': %w", filename, err)
		}
	}
	return writer.Close()
}

// NumericIndex resolves numeric ids to file offsets. Reads go through the
// shared FileScanner (optionally memory-mapped); resolved entries are kept in
// a cache bounded by cacheSize entries.
type NumericIndex struct {
	scanner   *storage.FileScanner
	count     int64
	cacheSize int
	cache     map[int64]int64
}

func OpenNumericIndex(filename string, cacheSize int, memoryMapped bool) (*NumericIndex, error) {
	scanner, err := storage.OpenFileScanner(filename, memoryMapped)
	if err != nil {
		return nil, err
	}
	count, err := scanner.ReadUint32()
	if err != nil {
		scanner.Close()
		return nil, fmt.Errorf("reading entry count of '%s': %w", filename, err)
	}
	return &NumericIndex{
		scanner:   scanner,
		count:     int64(count),
		cacheSize: cacheSize,
		cache:     make(map[int64]int64, cacheSize),
	}, nil
}

func (i *NumericIndex) entryAt(pos int64) (Entry, error) {
	i.scanner.SetPos(4 + pos*entrySize)
	id, err := i.scanner.ReadInt64()
	if err != nil {
		return Entry{}, err
	}
	offset, err := i.scanner.ReadInt64()
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Offset: offset}, nil
}

func (i *NumericIndex) lookup(id int64) (int64, error) {
	if offset, ok := i.cache[id]; ok {
		return offset, nil
	}

	low, high := int64(0), i.count-1
	for low <= high {
		mid := low + (high-low)/2
		entry, err := i.entryAt(mid)
		if err != nil {
			return 0, err
		}
		if entry.ID == id {
			if len(i.cache) >= i.cacheSize {
				clear(i.cache)
			}
			i.cache[id] = entry.Offset
			return entry.Offset, nil
		}
		if entry.ID < id {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return 0, fmt.Errorf("id %d: %w", id, ErrIDNotFound)
}

// GetOffsets resolves every id; a single missing id fails the whole batch.
func (i *NumericIndex) GetOffsets(ids []int64) ([]int64, error) {
	offsets := make([]int64, 0, len(ids))
	for _, id := range ids {
		offset, err := i.lookup(id)
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, offset)
	}
	return offsets, nil
}

func (i *NumericIndex) Close() error {
	return i.scanner.Close()
}
