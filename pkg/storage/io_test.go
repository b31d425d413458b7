package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, filename string) {
	writer, err := CreateFileWriter(filename)
	require.NoError(t, err)

	require.NoError(t, writer.WriteUint32(0)) // placeholder
	require.NoError(t, writer.WriteInt64(-42))
	require.NoError(t, writer.WriteFloat64(3.25))
	require.NoError(t, writer.WriteUint8(200))
	require.NoError(t, writer.WriteBool(true))
	require.NoError(t, writer.WriteString("via"))
	require.NoError(t, writer.WriteInt32(-7))

	// Patch the placeholder the way the stage patches its header.
	require.NoError(t, writer.SetPos(0))
	require.NoError(t, writer.WriteUint32(99))
	require.NoError(t, writer.Close())
}

func readSample(t *testing.T, filename string, memoryMapped bool) {
	scanner, err := OpenFileScanner(filename, memoryMapped)
	require.NoError(t, err)
	defer scanner.Close()

	header, err := scanner.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(99), header)

	i64, err := scanner.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i64)

	f64, err := scanner.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 3.25, f64)

	u8, err := scanner.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)

	b, err := scanner.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)

	s, err := scanner.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "via", s)

	i32, err := scanner.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i32)
}

func TestWriterScannerRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.dat")
	writeSample(t, filename)
	readSample(t, filename, false)
	readSample(t, filename, true)
}

func TestScannerSetPosRestores(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "pos.dat")

	writer, err := CreateFileWriter(filename)
	require.NoError(t, err)
	for i := int64(0); i < 10; i++ {
		require.NoError(t, writer.WriteInt64(i))
	}
	require.NoError(t, writer.Close())

	scanner, err := OpenFileScanner(filename, false)
	require.NoError(t, err)
	defer scanner.Close()

	first, err := scanner.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(0), first)

	oldPos := scanner.GetPos()

	scanner.SetPos(7 * 8)
	v, err := scanner.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	scanner.SetPos(oldPos)
	v, err = scanner.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestScannerTruncatedRead(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "short.dat")

	writer, err := CreateFileWriter(filename)
	require.NoError(t, err)
	require.NoError(t, writer.WriteUint8(1))
	require.NoError(t, writer.Close())

	scanner, err := OpenFileScanner(filename, false)
	require.NoError(t, err)
	defer scanner.Close()

	_, err = scanner.ReadInt64()
	assert.Error(t, err)
}
