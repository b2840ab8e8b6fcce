package eltype

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Depth is the 3-bit scalar type code stored in a matrix flag word.
type Depth uint8

const (
	U8  Depth = 0 // unsigned 8-bit
	S8  Depth = 1 // signed 8-bit
	U16 Depth = 2 // unsigned 16-bit
	S16 Depth = 3 // signed 16-bit
	S32 Depth = 4 // signed 32-bit
	F32 Depth = 5 // 32-bit float
	F64 Depth = 6 // 64-bit float

	// Undefined is the clamp target for depth codes with no table entry.
	Undefined Depth = 7
)

const (
	depthBits   = 3
	depthMask   = (1 << depthBits) - 1
	channelMask = 63
)

// MaxChannels is the largest channel count the flag packing can express.
const MaxChannels = channelMask + 1

// Info describes one entry of the element-type table.
type Info struct {
	Name   string // short type name, e.g. "CV_16S"
	Native string // native scalar spelling, e.g. "unsigned short"
	Size   int    // bytes per scalar
	Float  bool
	Signed bool
}

// table is indexed by Depth. The undefined entry carries the unsigned
// 8-bit byte size so lookups on bad headers stay usable.
var table = [8]Info{
	U8:        {Name: "CV_8U", Native: "unsigned char", Size: 1},
	S8:        {Name: "CV_8S", Native: "char", Size: 1, Signed: true},
	U16:       {Name: "CV_16U", Native: "unsigned short", Size: 2},
	S16:       {Name: "CV_16S", Native: "short", Size: 2, Signed: true},
	S32:       {Name: "CV_32S", Native: "int", Size: 4, Signed: true},
	F32:       {Name: "CV_32F", Native: "float", Size: 4, Float: true},
	F64:       {Name: "CV_64F", Native: "double", Size: 8, Float: true},
	Undefined: {Name: "undefined", Native: "void", Size: 1},
}

// Lookup returns the table entry for a depth code. Codes at or above
// [Undefined] clamp to the undefined entry.
func Lookup(d Depth) Info {
	if d >= Undefined {
		return table[Undefined]
	}
	return table[d]
}

// Unpack splits a matrix flag word into its depth code and channel count.
// depth = flags & 7, channels = 1 + ((flags >> 3) & 63).
func Unpack(flags uint32) (Depth, int) {
	depth := Depth(flags & depthMask)
	channels := 1 + int((flags>>depthBits)&channelMask)
	return depth, channels
}

// Pack builds a flag word from a depth code and channel count. It is the
// inverse of [Unpack] for depth in [0,7] and channels in [1,64].
func Pack(d Depth, channels int) uint32 {
	return uint32(d&depthMask) | uint32((channels-1)&channelMask)<<depthBits
}

// TypeName returns the combined type name for a depth and channel count,
// e.g. "CV_8UC3".
func TypeName(d Depth, channels int) string {
	return Lookup(d).Name + "C" + strconv.Itoa(channels)
}

// Format renders one scalar stored little-endian in b as text. b must hold
// at least Size bytes.
func (e Info) Format(b []byte) string {
	if len(b) < e.Size {
		return "?"
	}
	switch {
	case e.Float && e.Size == 4:
		v := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case e.Float:
		v := math.Float64frombits(binary.LittleEndian.Uint64(b))
		return strconv.FormatFloat(v, 'g', -1, 64)
	case e.Signed:
		return strconv.FormatInt(e.signed(b), 10)
	default:
		return strconv.FormatUint(e.unsigned(b), 10)
	}
}

func (e Info) unsigned(b []byte) uint64 {
	switch e.Size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func (e Info) signed(b []byte) int64 {
	switch e.Size {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	default:
		return int64(binary.LittleEndian.Uint64(b))
	}
}
