package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// FileWriter writes the little-endian binary records shared by all import
// stages. It wraps an os.File and keeps a small scratch buffer so primitive
// writes do not allocate.
type FileWriter struct {
	f        *os.File
	filename string
	scratch  [8]byte
}

func CreateFileWriter(filename string) (*FileWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot create '%s': %w", filename, err)
	}
	return &FileWriter{f: f, filename: filename}, nil
}

func (w *FileWriter) Filename() string {
	return w.filename
}

func (w *FileWriter) WriteUint8(value uint8) error {
	w.scratch[0] = value
	_, err := w.f.Write(w.scratch[:1])
	return err
}

func (w *FileWriter) WriteUint32(value uint32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], value)
	_, err := w.f.Write(w.scratch[:4])
	return err
}

func (w *FileWriter) WriteInt32(value int32) error {
	return w.WriteUint32(uint32(value))
}

func (w *FileWriter) WriteInt64(value int64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], uint64(value))
	_, err := w.f.Write(w.scratch[:8])
	return err
}

func (w *FileWriter) WriteFloat64(value float64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], math.Float64bits(value))
	_, err := w.f.Write(w.scratch[:8])
	return err
}

func (w *FileWriter) WriteBool(value bool) error {
	if value {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

// WriteString writes a uint32 length prefix followed by the raw bytes.
func (w *FileWriter) WriteString(value string) error {
	if err := w.WriteUint32(uint32(len(value))); err != nil {
		return err
	}
	_, err := w.f.WriteString(value)
	return err
}

func (w *FileWriter) GetPos() (int64, error) {
	return w.f.Seek(0, io.SeekCurrent)
}

func (w *FileWriter) SetPos(pos int64) error {
	_, err := w.f.Seek(pos, io.SeekStart)
	return err
}

func (w *FileWriter) Close() error {
	return w.f.Close()
}

// CloseFailsafe releases the file handle on error paths where the partially
// written output is going to be discarded anyway.
func (w *FileWriter) CloseFailsafe() {
	w.f.Close()
}
