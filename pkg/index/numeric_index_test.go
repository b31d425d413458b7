package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericIndexLookup(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "way.idx")

	// Deliberately unsorted; WriteIndex sorts by id.
	entries := []Entry{
		{ID: 30, Offset: 300},
		{ID: 10, Offset: 100},
		{ID: 50, Offset: 500},
		{ID: 20, Offset: 200},
		{ID: 40, Offset: 400},
	}
	require.NoError(t, WriteIndex(filename, entries))

	for _, memoryMapped := range []bool{false, true} {
		idx, err := OpenNumericIndex(filename, 2, memoryMapped)
		require.NoError(t, err)

		offsets, err := idx.GetOffsets([]int64{10, 30, 50})
		require.NoError(t, err)
		assert.Equal(t, []int64{100, 300, 500}, offsets)

		// Exceed the cache bound, then resolve everything again.
		offsets, err = idx.GetOffsets([]int64{20, 40, 10, 30})
		require.NoError(t, err)
		assert.Equal(t, []int64{200, 400, 100, 300}, offsets)

		require.NoError(t, idx.Close())
	}
}

func TestNumericIndexMissingID(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "way.idx")
	require.NoError(t, WriteIndex(filename, []Entry{{ID: 1, Offset: 4}}))

	idx, err := OpenNumericIndex(filename, 10, false)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.GetOffsets([]int64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIDNotFound)
}

func TestNumericIndexEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "way.idx")
	require.NoError(t, WriteIndex(filename, nil))

	idx, err := OpenNumericIndex(filename, 10, false)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.GetOffsets([]int64{7})
	assert.ErrorIs(t, err, ErrIDNotFound)
}
