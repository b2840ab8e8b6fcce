// Package snapshot stores a captured matrix header together with the raw
// memory regions backing it, so a buffer can be inspected offline.
//
// The container is little-endian: a 4-byte magic "CVSN" and a version
// byte, the header fields (flags, dimensions, step table, boundary
// pointers, optional reference count), then the memory regions, each as
// an address, a length and its bytes.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/abacchini/cvscope/cvscope"
	"github.com/abacchini/cvscope/internal/memread"
)

// Common errors
var (
	ErrNotSnapshot = errors.New("not a cvscope snapshot")
	ErrVersion     = errors.New("unsupported snapshot version")
)

var magic = [4]byte{'C', 'V', 'S', 'N'}

const formatVersion = 1

// maxRegionSize bounds a single region read so a corrupt length field
// cannot trigger an absurd allocation.
const maxRegionSize = 1 << 30

// Region is one address-mapped block of captured memory.
type Region struct {
	Addr uint64
	Data []byte
}

// Snapshot is a captured matrix header and its backing memory.
type Snapshot struct {
	Header  cvscope.MatHeader
	Regions []Region
}

// Image builds an in-process memory oracle over the captured regions.
func (s *Snapshot) Image() *memread.Image {
	img := memread.New()
	for _, r := range s.Regions {
		img.Map(r.Addr, r.Data)
	}
	return img
}

// Read parses a snapshot container.
func Read(src io.ReaderAt) (*Snapshot, error) {
	r := &reader{r: src}

	sig, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if [4]byte(sig) != magic {
		return nil, ErrNotSnapshot
	}

	version, err := r.uint8()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}

	var s Snapshot
	if err := readHeader(r, &s.Header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nregions, err := r.uint16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(nregions); i++ {
		addr, err := r.uint64()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		length, err := r.uint64()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		if length > maxRegionSize {
			return nil, fmt.Errorf("region %d: length %d too large", i, length)
		}
		data, err := r.bytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		s.Regions = append(s.Regions, Region{Addr: addr, Data: data})
	}

	return &s, nil
}

func readHeader(r *reader, hdr *cvscope.MatHeader) error {
	var err error
	if hdr.Flags, err = r.uint32(); err != nil {
		return err
	}
	if hdr.Rows, err = r.int64(); err != nil {
		return err
	}
	if hdr.Cols, err = r.int64(); err != nil {
		return err
	}
	if hdr.Dims, err = r.int64(); err != nil {
		return err
	}

	nstep, err := r.uint16()
	if err != nil {
		return err
	}
	for i := 0; i < int(nstep); i++ {
		step, err := r.int64()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		hdr.Step = append(hdr.Step, step)
	}

	if hdr.Data, err = r.uint64(); err != nil {
		return err
	}
	if hdr.DataStart, err = r.uint64(); err != nil {
		return err
	}
	if hdr.DataEnd, err = r.uint64(); err != nil {
		return err
	}
	if hdr.DataLimit, err = r.uint64(); err != nil {
		return err
	}

	hasRef, err := r.uint8()
	if err != nil {
		return err
	}
	if hasRef != 0 {
		v, err := r.uint32()
		if err != nil {
			return err
		}
		rc := int32(v)
		hdr.RefCount = &rc
	}
	return nil
}

// reader reads little-endian fields from an io.ReaderAt, tracking its own
// position.
type reader struct {
	r   io.ReaderAt
	pos int64
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := r.r.ReadAt(buf, r.pos); err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

func (r *reader) uint8() (uint8, error) {
	buf, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (r *reader) uint16() (uint16, error) {
	buf, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (r *reader) uint32() (uint32, error) {
	buf, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (r *reader) uint64() (uint64, error) {
	buf, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func (r *reader) int64() (int64, error) {
	v, err := r.uint64()
	return int64(v), err
}
