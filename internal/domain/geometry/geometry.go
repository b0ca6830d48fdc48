// Package geometry holds the pixel-space primitives used to relate OCR lines to each other.
package geometry

import (
	"fmt"

	"github.com/kailas-cloud/chapterdex/internal/domain"
)

// CornerCount is the number of corners in a well-formed OCR polygon.
const CornerCount = 4

// RawLen is the number of raw coordinates in a well-formed OCR polygon.
const RawLen = CornerCount * 2

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Box is an axis-aligned rectangle described by two diagonal corners.
type Box struct {
	TopLeft     Point
	BottomRight Point
}

// Corners converts an alternating x,y coordinate list (clockwise from top-left) into points.
// A list that is not exactly 8 numbers long is reported as malformed, but every
// complete pair is still returned so callers can keep whatever geometry exists.
func Corners(raw []int) ([]Point, error) {
	pts := make([]Point, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		pts = append(pts, Point{X: raw[i], Y: raw[i+1]})
	}
	if len(raw) != RawLen {
		return pts, fmt.Errorf("expected %d coordinates, got %d: %w", RawLen, len(raw), domain.ErrMalformedGeometry)
	}
	return pts, nil
}

// BoxFromCorners builds a Box from a 4-corner polygon (top-left at 0, bottom-right at 2).
func BoxFromCorners(pts []Point) (Box, error) {
	if len(pts) != CornerCount {
		return Box{}, fmt.Errorf("expected %d corners, got %d: %w", CornerCount, len(pts), domain.ErrMalformedGeometry)
	}
	return Box{TopLeft: pts[0], BottomRight: pts[2]}, nil
}

// Height returns the vertical extent of the box.
func (b Box) Height() int {
	h := b.BottomRight.Y - b.TopLeft.Y
	if h < 0 {
		return -h
	}
	return h
}

// Overlaps reports whether two boxes intersect, with the vertical test loosened by slack
// pixels. The slack absorbs baseline drift between consecutive scanned lines.
func Overlaps(a, b Box, slack int) bool {
	return !(b.TopLeft.X > a.BottomRight.X ||
		a.TopLeft.X > b.BottomRight.X ||
		b.TopLeft.Y-slack > a.BottomRight.Y ||
		a.TopLeft.Y-slack > b.BottomRight.Y)
}
