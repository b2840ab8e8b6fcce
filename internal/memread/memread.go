// Package memread provides an in-process memory image that serves raw
// reads by address, the way a debugger reads target memory.
//
// An [Image] holds disjoint address-mapped byte regions. It backs tests
// and offline snapshot inspection, standing in for a live process.
package memread

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
	"honnef.co/go/safeish"
)

// ErrUnmapped is returned when a read touches an address with no region.
var ErrUnmapped = errors.New("memread: address not mapped")

type region struct {
	addr uint64
	data []byte
}

// Image is a set of address-mapped byte regions.
type Image struct {
	regions []region // sorted by addr
}

// New returns an empty memory image.
func New() *Image {
	return &Image{}
}

// Map adds a region of raw bytes at the given address. Regions must not
// overlap; the bytes are used directly, not copied.
func (m *Image) Map(addr uint64, data []byte) {
	m.regions = append(m.regions, region{addr: addr, data: data})
	sort.Slice(m.regions, func(i, j int) bool {
		return m.regions[i].addr < m.regions[j].addr
	})
}

// ReadMemory reads bytes at the given address into p. It returns the
// number of bytes read, which is less than len(p) when the request runs
// past the end of the containing region; the remainder is reported as
// [ErrUnmapped].
func (m *Image) ReadMemory(addr uint64, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	i := sort.Search(len(m.regions), func(i int) bool {
		return m.regions[i].addr+uint64(len(m.regions[i].data)) > addr
	})
	if i == len(m.regions) || m.regions[i].addr > addr {
		return 0, fmt.Errorf("%w: 0x%X", ErrUnmapped, addr)
	}

	r := m.regions[i]
	n := copy(p, r.data[addr-r.addr:])
	if n < len(p) {
		return n, fmt.Errorf("%w: 0x%X", ErrUnmapped, addr+uint64(n))
	}
	return n, nil
}

// Bytes reinterprets a typed scalar slice as its raw little-endian bytes,
// sharing the backing array. It is the usual way to stage element data
// before mapping it into an image.
func Bytes[T constraints.Integer | constraints.Float](s []T) []byte {
	return safeish.SliceCast[[]byte](s)
}
