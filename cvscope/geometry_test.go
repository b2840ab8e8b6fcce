package cvscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abacchini/cvscope/internal/numfmt"
)

func values(t *testing.T, n Node) map[string]string {
	t.Helper()
	children, err := n.Children()
	require.NoError(t, err)
	out := make(map[string]string, len(children))
	for _, c := range children {
		out[c.Name] = c.Value
	}
	return out
}

func TestDescribePointFloat(t *testing.T) {
	n, err := DescribePoint(Point{Kind: numfmt.Float, X: 3, Y: 4})
	require.NoError(t, err)

	assert.Equal(t, "[3.00, 4.00]", n.Value)
	assert.Equal(t, "cv::Point", n.Type)
	assert.Equal(t, 4, n.ChildCount)

	vals := values(t, n)
	assert.Equal(t, "3.00", vals["x"])
	assert.Equal(t, "4.00", vals["y"])
	assert.Equal(t, "5.00", vals["module"])
	assert.Equal(t, "53.13", vals["angle"])
}

func TestDescribePointInteger(t *testing.T) {
	n, err := DescribePoint(Point{Kind: numfmt.Integer, X: 3, Y: 4})
	require.NoError(t, err)

	assert.Equal(t, "[3, 4]", n.Value)

	vals := values(t, n)
	assert.Equal(t, "3", vals["x"])
	assert.Equal(t, "4", vals["y"])
	// Derived values stay floating whatever the point's domain.
	assert.Equal(t, "5.00", vals["module"])
	assert.Equal(t, "53.13", vals["angle"])
}

func TestDescribePointUnknownDomain(t *testing.T) {
	_, err := DescribePoint(Point{X: 1, Y: 2})
	assert.ErrorIs(t, err, ErrUnsupportedScalar)
}

func TestDescribeSize(t *testing.T) {
	n, err := DescribeSize(Size{Kind: numfmt.Float, Width: 4, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, "4.00x2.00", n.Value)

	vals := values(t, n)
	assert.Len(t, vals, 2)
	assert.Equal(t, "4.00", vals["width"])
	assert.Equal(t, "2.00", vals["height"])

	n, err = DescribeSize(Size{Kind: numfmt.Integer, Width: 640, Height: 480})
	require.NoError(t, err)
	assert.Equal(t, "640x480", n.Value)

	_, err = DescribeSize(Size{Width: 1, Height: 1})
	assert.ErrorIs(t, err, ErrUnsupportedScalar)
}

func TestDescribeRect(t *testing.T) {
	n, err := DescribeRect(Rect{Kind: numfmt.Integer, X: 0, Y: 0, Width: 4, Height: 5})
	require.NoError(t, err)

	assert.Equal(t, "[0, 0][4x5]", n.Value)
	assert.Equal(t, "cv::Rect", n.Type)

	vals := values(t, n)
	assert.Equal(t, "0", vals["x"])
	assert.Equal(t, "0", vals["y"])
	assert.Equal(t, "4", vals["width"])
	assert.Equal(t, "5", vals["height"])
	assert.Equal(t, "20.00", vals["area"])
}

func TestDescribeRectFloatSummary(t *testing.T) {
	n, err := DescribeRect(Rect{Kind: numfmt.Float, X: 1.5, Y: -2, Width: 3, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, "[1.50, -2.00][3.00x2.00]", n.Value)
}

func TestDescribeRotatedRect(t *testing.T) {
	r := RotatedRect{
		Kind:   numfmt.Float,
		Angle:  0,
		Center: Point{Kind: numfmt.Float, X: 0, Y: 0},
		Size:   Size{Kind: numfmt.Float, Width: 4, Height: 2},
	}
	n, err := DescribeRotatedRect(r)
	require.NoError(t, err)

	assert.Equal(t, "[0.00, 0.00][4.00x2.00, 0.00]", n.Value)
	assert.Equal(t, "cv::RotatedRect", n.Type)

	children, err := n.Children()
	require.NoError(t, err)
	require.Len(t, children, 6)

	vals := values(t, n)
	assert.Equal(t, "0.00", vals["angle"])
	assert.Equal(t, "[0.00, 0.00]", vals["center"])
	assert.Equal(t, "4.00x2.00", vals["size"])
	assert.Equal(t, "8.00", vals["area"])

	// Nested center keeps the full point rendering.
	center := childByName(t, children, "center")
	centerVals := values(t, center)
	assert.Equal(t, "0.00", centerVals["module"])

	points := childByName(t, children, "points")
	corners, err := points.Children()
	require.NoError(t, err)
	require.Len(t, corners, 4)
	assert.Equal(t, "(-2.00, 1.00)", corners[0].Value)
	assert.Equal(t, "(-2.00, -1.00)", corners[1].Value)
	assert.Equal(t, "(2.00, -1.00)", corners[2].Value)
	assert.Equal(t, "(2.00, 1.00)", corners[3].Value)

	bounding := childByName(t, children, "boundingrect")
	assert.Equal(t, "[-2.00, -1.00][4.00x2.00]", bounding.Value)
	bvals := values(t, bounding)
	assert.Equal(t, "(-2.00, -1.00)", bvals["topleft"])
	assert.Equal(t, "(2.00, 1.00)", bvals["bottomright"])
	assert.Equal(t, "4.00x2.00", bvals["size"])
	assert.Equal(t, "8.00", bvals["area"])
}

func TestDescribeRotatedRectTilted(t *testing.T) {
	r := RotatedRect{
		Kind:   numfmt.Float,
		Angle:  90,
		Center: Point{Kind: numfmt.Float, X: 0, Y: 0},
		Size:   Size{Kind: numfmt.Float, Width: 4, Height: 2},
	}
	n, err := DescribeRotatedRect(r)
	require.NoError(t, err)

	children, err := n.Children()
	require.NoError(t, err)

	// Rotating a quarter turn swaps the bounding extents.
	bounding := childByName(t, children, "boundingrect")
	assert.Equal(t, "[-1.00, -2.00][2.00x4.00]", bounding.Value)
	bvals := values(t, bounding)
	assert.Equal(t, "8.00", bvals["area"])
}

func TestDescribeRotatedRectBadDomains(t *testing.T) {
	_, err := DescribeRotatedRect(RotatedRect{})
	assert.ErrorIs(t, err, ErrUnsupportedScalar)

	r := RotatedRect{
		Kind:   numfmt.Float,
		Center: Point{Kind: numfmt.Float},
		Size:   Size{}, // unknown domain
	}
	_, err = DescribeRotatedRect(r)
	assert.ErrorIs(t, err, ErrUnsupportedScalar)
}

func TestGeometryIdempotent(t *testing.T) {
	p := Point{Kind: numfmt.Float, X: -1.25, Y: 0.5}

	first, err := DescribePoint(p)
	require.NoError(t, err)
	second, err := DescribePoint(p)
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, values(t, first), values(t, second))
}
