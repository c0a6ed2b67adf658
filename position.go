package watermark

import (
	"fmt"
	"image"
	"strings"
)

// Position is the anchor of a watermark on the target image.
type Position int

// Watermark positions.
const (
	BottomRight Position = iota
	BottomLeft
	TopRight
	TopLeft
	Center
)

var positionNames = map[Position]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
	Center:      "center",
}

// DefaultMargin is the margin in pixels used for every edge unless specified.
const DefaultMargin = 20

// Margins holds the distance in pixels between the watermark and each edge.
type Margins struct {
	Top, Bottom, Left, Right int
}

// DefaultMargins returns margins of DefaultMargin on every edge.
func DefaultMargins() Margins {
	return UniformMargins(DefaultMargin)
}

// UniformMargins returns margins of n on every edge.
func UniformMargins(n int) Margins {
	return Margins{n, n, n, n}
}

func (m Margins) valid() bool {
	return m.Top >= 0 && m.Bottom >= 0 && m.Left >= 0 && m.Right >= 0
}

// PositionFromString returns the position for the keyword s.
// Keywords are matched case-insensitively.
func PositionFromString(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range positionNames {
		if name == s {
			return p, nil
		}
	}
	return -1, fmt.Errorf("unknown position: %q", s)
}

// lookupPosition is the lenient form of PositionFromString.
func lookupPosition(s string) Position {
	if p, err := PositionFromString(s); err == nil {
		return p
	}
	return BottomRight
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if _, ok := positionNames[p]; !ok {
		return nil, fmt.Errorf("unknown position: %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) (err error) {
	*p, err = PositionFromString(string(text))
	return
}

// Point returns the top-left corner of a content box of size content placed
// on a canvas of size canvas. Unknown positions are treated as BottomRight.
func (p Position) Point(canvas, content image.Point, m Margins) image.Point {
	switch p {
	case TopLeft:
		return image.Pt(m.Left, m.Top)
	case TopRight:
		return image.Pt(canvas.X-content.X-m.Right, m.Top)
	case BottomLeft:
		return image.Pt(m.Left, canvas.Y-content.Y-m.Bottom)
	case Center:
		return image.Pt(floorDiv(canvas.X-content.X, 2), floorDiv(canvas.Y-content.Y, 2))
	default:
		return image.Pt(canvas.X-content.X-m.Right, canvas.Y-content.Y-m.Bottom)
	}
}

// Resolve is like Position.Point but takes the position keyword.
// Unrecognized keywords resolve to bottom-right.
func Resolve(keyword string, canvas, content image.Point, m Margins) image.Point {
	return lookupPosition(keyword).Point(canvas, content, m)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
