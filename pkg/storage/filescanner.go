package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/exp/mmap"
)

// FileScanner reads the little-endian binary records written by FileWriter.
// Reads go through an io.ReaderAt so the scanner position can be saved,
// moved for a random-access batch, and restored without disturbing any
// buffered state. The backing is either a plain file or a memory mapping.
type FileScanner struct {
	r        io.ReaderAt
	closer   io.Closer
	filename string
	pos      int64
	scratch  [8]byte
}

func OpenFileScanner(filename string, memoryMapped bool) (*FileScanner, error) {
	if memoryMapped {
		r, err := mmap.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open '%s': %w", filename, err)
		}
		return &FileScanner{r: r, closer: r, filename: filename}, nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open '%s': %w", filename, err)
	}
	return &FileScanner{r: f, closer: f, filename: filename}, nil
}

func (s *FileScanner) Filename() string {
	return s.filename
}

func (s *FileScanner) read(n int) ([]byte, error) {
	read, err := s.r.ReadAt(s.scratch[:n], s.pos)
	if read < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read at offset %d in '%s': %w", s.pos, s.filename, err)
	}
	s.pos += int64(n)
	return s.scratch[:n], nil
}

func (s *FileScanner) ReadUint8() (uint8, error) {
	b, err := s.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *FileScanner) ReadUint32() (uint32, error) {
	b, err := s.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *FileScanner) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

func (s *FileScanner) ReadInt64() (int64, error) {
	b, err := s.read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (s *FileScanner) ReadFloat64() (float64, error) {
	b, err := s.read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (s *FileScanner) ReadBool() (bool, error) {
	v, err := s.ReadUint8()
	return v != 0, err
}

func (s *FileScanner) ReadString() (string, error) {
	length, err := s.ReadUint32()
	if err != nil {
		return "", err
	}
	buf := make([]byte, length)
	read, err := s.r.ReadAt(buf, s.pos)
	if read < int(length) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("read at offset %d in '%s': %w", s.pos, s.filename, err)
	}
	s.pos += int64(length)
	return string(buf), nil
}

func (s *FileScanner) GetPos() int64 {
	return s.pos
}

func (s *FileScanner) SetPos(pos int64) {
	s.pos = pos
}

func (s *FileScanner) Close() error {
	return s.closer.Close()
}
