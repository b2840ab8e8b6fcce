package cvscope

import (
	"fmt"
	"math"

	"github.com/abacchini/cvscope/internal/geomath"
	"github.com/abacchini/cvscope/internal/numfmt"
)

// Point is a 2D coordinate pair. Kind is the declared numeric domain of
// the inspected fields, resolved by the host's type lookup; it decides
// whether fields render as integers or with two decimal places.
type Point struct {
	Kind numfmt.Kind
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Kind          numfmt.Kind
	Width, Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Kind          numfmt.Kind
	X, Y          float64
	Width, Height float64
}

// RotatedRect is a rectangle with a rotation angle in degrees. Center and
// Size are expected to share the rectangle's numeric domain.
type RotatedRect struct {
	Kind   numfmt.Kind
	Angle  float64
	Center Point
	Size   Size
}

// DescribePoint renders a point as "[x, y]" with the coordinates, the
// magnitude and the direction angle as children. The magnitude and angle
// are always floating, whatever the point's own domain.
func DescribePoint(p Point) (Node, error) {
	if !p.Kind.Valid() {
		return Node{}, fmt.Errorf("point: %w: %s", ErrUnsupportedScalar, p.Kind)
	}

	summary := fmt.Sprintf("[%s, %s]", numfmt.Text(p.Kind, p.X), numfmt.Text(p.Kind, p.Y))
	return Parent("", summary, "cv::Point", 4, func() ([]Node, error) {
		return []Node{
			Leaf("x", numfmt.Text(p.Kind, p.X), p.Kind.String()),
			Leaf("y", numfmt.Text(p.Kind, p.Y), p.Kind.String()),
			Leaf("module", numfmt.Fixed(math.Hypot(p.X, p.Y)), "float"),
			Leaf("angle", numfmt.Fixed(math.Atan2(p.Y, p.X)*180/math.Pi), "float"),
		}, nil
	}), nil
}

// DescribeSize renders a size as "widthxheight" with the two extents as
// children.
func DescribeSize(s Size) (Node, error) {
	if !s.Kind.Valid() {
		return Node{}, fmt.Errorf("size: %w: %s", ErrUnsupportedScalar, s.Kind)
	}

	summary := numfmt.Text(s.Kind, s.Width) + "x" + numfmt.Text(s.Kind, s.Height)
	return Parent("", summary, "cv::Size", 2, func() ([]Node, error) {
		return []Node{
			Leaf("width", numfmt.Text(s.Kind, s.Width), s.Kind.String()),
			Leaf("height", numfmt.Text(s.Kind, s.Height), s.Kind.String()),
		}, nil
	}), nil
}

// DescribeRect renders a rectangle as "[x, y][widthxheight]" with the
// four fields and the derived area as children.
func DescribeRect(r Rect) (Node, error) {
	if !r.Kind.Valid() {
		return Node{}, fmt.Errorf("rect: %w: %s", ErrUnsupportedScalar, r.Kind)
	}

	summary := fmt.Sprintf("[%s, %s][%sx%s]",
		numfmt.Text(r.Kind, r.X), numfmt.Text(r.Kind, r.Y),
		numfmt.Text(r.Kind, r.Width), numfmt.Text(r.Kind, r.Height))
	return Parent("", summary, "cv::Rect", 5, func() ([]Node, error) {
		return []Node{
			Leaf("x", numfmt.Text(r.Kind, r.X), r.Kind.String()),
			Leaf("y", numfmt.Text(r.Kind, r.Y), r.Kind.String()),
			Leaf("width", numfmt.Text(r.Kind, r.Width), r.Kind.String()),
			Leaf("height", numfmt.Text(r.Kind, r.Height), r.Kind.String()),
			Leaf("area", numfmt.Fixed(r.Width*r.Height), "float"),
		}, nil
	}), nil
}

// DescribeRotatedRect renders a rotated rectangle as
// "[x, y][widthxheight, angle]". Children cover the primary fields, the
// nested center point and size, the unrotated area, the four corner
// points and the axis-aligned bounding box.
func DescribeRotatedRect(r RotatedRect) (Node, error) {
	if !r.Kind.Valid() {
		return Node{}, fmt.Errorf("rotated rect: %w: %s", ErrUnsupportedScalar, r.Kind)
	}
	if !r.Center.Kind.Valid() || !r.Size.Kind.Valid() {
		return Node{}, fmt.Errorf("rotated rect: %w: mixed center/size domains", ErrUnsupportedScalar)
	}

	summary := fmt.Sprintf("[%s, %s][%sx%s, %s]",
		numfmt.Text(r.Kind, r.Center.X), numfmt.Text(r.Kind, r.Center.Y),
		numfmt.Text(r.Kind, r.Size.Width), numfmt.Text(r.Kind, r.Size.Height),
		numfmt.Text(r.Kind, r.Angle))
	return Parent("", summary, "cv::RotatedRect", 6, func() ([]Node, error) {
		center, err := DescribePoint(r.Center)
		if err != nil {
			return nil, err
		}
		center.Name = "center"

		size, err := DescribeSize(r.Size)
		if err != nil {
			return nil, err
		}
		size.Name = "size"

		corners := geomath.Corners(r.Center.X, r.Center.Y, r.Size.Width, r.Size.Height, r.Angle)
		return []Node{
			Leaf("angle", numfmt.Text(r.Kind, r.Angle), r.Kind.String()),
			center,
			size,
			Leaf("area", numfmt.Fixed(r.Size.Width*r.Size.Height), "float"),
			cornersNode(corners),
			boundingNode(corners),
		}, nil
	}), nil
}

func cornersNode(corners [4]geomath.Vec2) Node {
	return Parent("points", "", "cv::Point2f[4]", len(corners), func() ([]Node, error) {
		children := make([]Node, len(corners))
		for i, c := range corners {
			children[i] = Leaf(fmt.Sprintf("[%d]", i), numfmt.Pair(c.X, c.Y), "cv::Point2f")
		}
		return children, nil
	})
}

func boundingNode(corners [4]geomath.Vec2) Node {
	tl, br := geomath.BoundingBox(corners)
	width := br.X - tl.X
	height := br.Y - tl.Y

	value := fmt.Sprintf("[%s, %s][%sx%s]",
		numfmt.Fixed(tl.X), numfmt.Fixed(tl.Y), numfmt.Fixed(width), numfmt.Fixed(height))
	return Parent("boundingrect", value, "cv::Rect2f", 4, func() ([]Node, error) {
		return []Node{
			Leaf("topleft", numfmt.Pair(tl.X, tl.Y), "cv::Point2f"),
			Leaf("bottomright", numfmt.Pair(br.X, br.Y), "cv::Point2f"),
			Leaf("size", numfmt.Fixed(width)+"x"+numfmt.Fixed(height), "cv::Size2f"),
			Leaf("area", numfmt.Fixed(width*height), "float"),
		}, nil
	})
}
