package cvscope

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abacchini/cvscope/internal/eltype"
)

// MaxGridElements caps how many element cells the data grid renders,
// regardless of the true matrix size. The cap bounds the cost of a single
// expansion and is not configurable.
const MaxGridElements = 1000

// MatHeader is a read-only view over a matrix header in target memory.
// The hosting inspector fills it from the raw struct fields.
type MatHeader struct {
	// Flags packs the element depth code (bits 0..2) and the channel
	// count minus one (bits 3..8).
	Flags uint32

	Rows int64
	Cols int64
	Dims int64

	// Step holds the byte stride per dimension; Step[0] is the row
	// stride.
	Step []int64

	// Data points at the current view; DataStart, DataEnd and DataLimit
	// bound the backing allocation.
	Data      uint64
	DataStart uint64
	DataEnd   uint64
	DataLimit uint64

	// RefCount is nil when the header predates reference counting.
	RefCount *int32
}

// BufferState classifies how the backing buffer is held.
type BufferState int

const (
	// StateUnknown means the header carries no reference count.
	StateUnknown BufferState = iota
	// StateUninstantiated means no buffer has been allocated yet.
	StateUninstantiated
	// StateUnique means this header holds the only view of the buffer.
	StateUnique
	// StateShared means other views share the buffer.
	StateShared
)

func (s BufferState) String() string {
	switch s {
	case StateUninstantiated:
		return "uninstantiated"
	case StateUnique:
		return "unique"
	case StateShared:
		return "shared"
	default:
		return "unknown"
	}
}

// State derives the buffer occupancy from the reference count.
func (h MatHeader) State() BufferState {
	if h.RefCount == nil {
		return StateUnknown
	}
	switch rc := *h.RefCount; {
	case rc <= 0:
		return StateUninstantiated
	case rc == 1:
		return StateUnique
	default:
		return StateShared
	}
}

// LineStride returns the byte stride between consecutive rows, or zero
// when the header carries no step table.
func (h MatHeader) LineStride() int64 {
	if len(h.Step) == 0 {
		return 0
	}
	return h.Step[0]
}

// ROI is the sub-rectangle the current view exposes of the full buffer.
type ROI struct {
	X, Y          int64 // offset into the full buffer, in elements/rows
	Width, Height int64
}

// ROI recovers the active region of interest from the byte offset between
// the view pointer and the allocation start. A non-positive offset means
// the view covers the whole buffer.
func (h MatHeader) ROI() ROI {
	roi := ROI{Width: h.Cols, Height: h.Rows}

	off := int64(h.Data) - int64(h.DataStart)
	stride := h.LineStride()
	if off <= 0 || stride <= 0 {
		return roi
	}

	depth, channels := eltype.Unpack(h.Flags)
	elemBytes := int64(eltype.Lookup(depth).Size) * int64(channels)

	roi.Y = off / stride
	roi.X = (off % stride) / elemBytes
	return roi
}

// DescribeMat interprets a matrix header into a lazy inspection tree. The
// summary is computed eagerly; the child nodes, including the bounded
// element grid, are produced only when the returned node is expanded.
// Malformed headers still yield a best-effort summary and render whatever
// children remain meaningful.
func DescribeMat(hdr MatHeader, mem Oracle, opts ...DescribeOption) Node {
	o := defaultDescribeOptions()
	for _, opt := range opts {
		opt(o)
	}

	depth, channels := eltype.Unpack(hdr.Flags)
	info := eltype.Lookup(depth)
	typeName := eltype.TypeName(depth, channels)

	o.log.WithFields(logrus.Fields{
		"type":  typeName,
		"rows":  hdr.Rows,
		"cols":  hdr.Cols,
		"state": hdr.State().String(),
	}).Debug("describing matrix header")

	childCount := 10
	if hdr.RefCount != nil {
		childCount++
	}

	return Parent("", matSummary(hdr, typeName), "cv::Mat", childCount, func() ([]Node, error) {
		return matChildren(hdr, info, channels, typeName, mem, o.log), nil
	})
}

// matSummary renders "{cols}x{rows} {type}" with the buffer-state suffix.
// An uninstantiated buffer replaces the summary entirely; an unknown
// state adds nothing.
func matSummary(hdr MatHeader, typeName string) string {
	s := fmt.Sprintf("%dx%d %s", hdr.Cols, hdr.Rows, typeName)
	switch hdr.State() {
	case StateUninstantiated:
		return "uninstantiated"
	case StateUnique, StateShared:
		return s + " " + hdr.State().String()
	default:
		return s
	}
}

func matChildren(hdr MatHeader, info eltype.Info, channels int, typeName string, mem Oracle, log logrus.FieldLogger) []Node {
	children := []Node{
		Leaf("flags", fmt.Sprintf("%s (0x%X)", typeName, hdr.Flags), "int"),
		Leaf("rows", strconv.FormatInt(hdr.Rows, 10), "int"),
		Leaf("cols", strconv.FormatInt(hdr.Cols, 10), "int"),
		Leaf("dims", strconv.FormatInt(hdr.Dims, 10), "int"),
	}
	if hdr.RefCount != nil {
		children = append(children, Leaf("refcount", strconv.FormatInt(int64(*hdr.RefCount), 10), "int"))
	}

	children = append(children,
		gridNode(hdr, info, channels, mem, log),
		Leaf("dataend", fmt.Sprintf("0x%X", hdr.DataEnd), "unsigned char*"),
		Leaf("datastart", fmt.Sprintf("0x%X", hdr.DataStart), "unsigned char*"),
		Leaf("datalimit", fmt.Sprintf("0x%X", hdr.DataLimit), "unsigned char*"),
		Leaf("stride", strconv.FormatInt(hdr.LineStride(), 10), "int"),
		roiNode(hdr),
	)
	return children
}

// gridNode builds the bounded element grid. A zero or negative dimension
// yields a childless data node outright rather than an unforced thunk.
func gridNode(hdr MatHeader, info eltype.Info, channels int, mem Oracle, log logrus.FieldLogger) Node {
	var total int64
	if hdr.Rows > 0 && hdr.Cols > 0 {
		total = hdr.Rows * hdr.Cols
		if total/hdr.Cols != hdr.Rows {
			// Garbage dimensions can overflow the product; clamp so the
			// grid still degrades to the cap instead of a negative count.
			total = math.MaxInt64
		}
	}
	value := fmt.Sprintf("%dx%d (%d, 0x%X)", hdr.Cols, hdr.Rows, total, hdr.Data)
	typ := info.Native + "*"

	count := min(total, MaxGridElements)
	if count == 0 {
		return Leaf("data", value, typ)
	}

	return Parent("data", value, typ, int(count), func() ([]Node, error) {
		elemBytes := int64(info.Size) * int64(channels)
		stride := hdr.LineStride()
		if stride <= 0 {
			// Headers without a step table fall back to packed rows.
			stride = hdr.Cols * elemBytes
		}

		children := make([]Node, 0, count)
		buf := make([]byte, elemBytes)
	grid:
		for i := int64(0); i < hdr.Rows; i++ {
			for j := int64(0); j < hdr.Cols; j++ {
				if int64(len(children)) >= count {
					break grid
				}
				name := fmt.Sprintf("[%d,%d]", i, j)
				addr := hdr.Data + uint64(i*stride+j*elemBytes)
				if err := readFull(mem, addr, buf); err != nil {
					log.WithError(err).WithField("cell", name).Warn("element read failed")
					children = append(children, errorLeaf(name, info.Native, err))
					continue
				}
				children = append(children, Leaf(name, formatElement(info, channels, buf), info.Native))
			}
		}
		return children, nil
	})
}

// formatElement renders one cell: the bare scalar for single-channel
// matrices, a short vector otherwise.
func formatElement(info eltype.Info, channels int, raw []byte) string {
	if channels == 1 {
		return info.Format(raw)
	}
	parts := make([]string, channels)
	for c := 0; c < channels; c++ {
		parts[c] = info.Format(raw[c*info.Size:])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func roiNode(hdr MatHeader) Node {
	roi := hdr.ROI()
	value := fmt.Sprintf("[%d,%d][%dx%d]", roi.X, roi.Y, roi.Width, roi.Height)
	return Parent("roi", value, "", 4, func() ([]Node, error) {
		return []Node{
			Leaf("x", strconv.FormatInt(roi.X, 10), "int"),
			Leaf("y", strconv.FormatInt(roi.Y, 10), "int"),
			Leaf("width", strconv.FormatInt(roi.Width, 10), "int"),
			Leaf("height", strconv.FormatInt(roi.Height, 10), "int"),
		}, nil
	})
}
