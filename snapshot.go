package kmeansgo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/kmeansgo/codec"
)

// Snapshot format:
//
//	magic    [4]byte  "KMGO"
//	version  uint8    currently 1
//	nameLen  uint8
//	name     [nameLen]byte   codec name, e.g. "json"
//	payload  zstd-compressed codec output until EOF
//
// The codec name in the header makes snapshots self-describing; LoadModel
// selects the codec by name, so the default codec can change without
// breaking existing files.

var snapshotMagic = [4]byte{'K', 'M', 'G', 'O'}

const snapshotVersion = 1

// ErrSnapshotFormat is returned when a snapshot file is malformed or was
// written by an unsupported version or codec.
var ErrSnapshotFormat = errors.New("invalid snapshot format")

// SaveModel writes m to w as a zstd-compressed snapshot using the default
// codec.
func SaveModel(w io.Writer, m *Model) error {
	return SaveModelWithCodec(w, m, codec.Default)
}

// SaveModelWithCodec writes m to w as a zstd-compressed snapshot using c.
// The codec must be resolvable by codec.ByName on load.
func SaveModelWithCodec(w io.Writer, m *Model, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	if err := m.validate(); err != nil {
		return err
	}

	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("%w: codec name %q", ErrSnapshotFormat, name)
	}

	header := make([]byte, 0, 4+2+len(name))
	header = append(header, snapshotMagic[:]...)
	header = append(header, snapshotVersion, uint8(len(name)))
	header = append(header, name...)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	payload, err := c.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		_ = zw.Close()
		return fmt.Errorf("write snapshot payload: %w", err)
	}

	return zw.Close()
}

// LoadModel reads a model snapshot previously written by SaveModel.
func LoadModel(r io.Reader) (*Model, error) {
	var fixed [6]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %w", ErrSnapshotFormat, err)
	}
	if [4]byte(fixed[:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrSnapshotFormat)
	}
	if fixed[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotFormat, fixed[4])
	}

	nameLen := int(fixed[5])
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("%w: short codec name: %w", ErrSnapshotFormat, err)
	}

	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrSnapshotFormat, name)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create decompressor: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt payload: %w", ErrSnapshotFormat, err)
	}

	var m Model
	if err := c.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// SaveModelFile writes a model snapshot to path, replacing any existing
// file atomically (write to temp file, then rename).
func SaveModelFile(path string, m *Model) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kmgo-snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if err := SaveModel(tmp, m); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}

// LoadModelFile reads a model snapshot from path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return LoadModel(f)
}
