// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

// Rectangle is an axis-aligned rectangle in uint32 texel space.
//
// It is described by a minimum coordinate, inclusive, and a maximum
// coordinate, exclusive. Any rectangle where the order is not correct is
// interpreted as empty. Degenerate values are never rejected; treating
// them as empty keeps downstream arithmetic total.
type Rectangle struct {
	X    uint32
	Y    uint32
	MaxX uint32
	MaxY uint32
}

// Rect returns a rectangle at the origin with the given width and height.
func Rect(width, height uint32) Rectangle {
	return Rectangle{X: 0, Y: 0, MaxX: width, MaxY: height}
}

// RectOf returns the rectangle describing a complete buffer layout.
func RectOf(layout BufferLayout) Rectangle {
	return Rect(layout.Width, layout.Height)
}

// Width returns the apparent width. Empty rectangles have width 0.
func (r Rectangle) Width() uint32 {
	if r.MaxX < r.X {
		return 0
	}
	return r.MaxX - r.X
}

// Height returns the apparent height. Empty rectangles have height 0.
func (r Rectangle) Height() uint32 {
	if r.MaxY < r.Y {
		return 0
	}
	return r.MaxY - r.Y
}

// Empty reports whether the rectangle contains no texels.
func (r Rectangle) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether r fully contains other.
func (r Rectangle) Contains(other Rectangle) bool {
	if r.X > other.X || r.Y > other.Y {
		return false
	}
	// Offsets are non-wrapping after the check above.
	offsetX := other.X - r.X
	offsetY := other.Y - r.Y
	if r.Width() < offsetX || r.Height() < offsetY {
		return false
	}
	return r.Width()-offsetX >= other.Width() && r.Height()-offsetY >= other.Height()
}

// Normalize brings the rectangle into a form where minimum and maximum
// are a true interval. Width and height are preserved.
func (r Rectangle) Normalize() Rectangle {
	return Rectangle{
		X:    r.X,
		Y:    r.Y,
		MaxX: r.X + r.Width(),
		MaxY: r.Y + r.Height(),
	}
}

// Meet returns the overlap of the two rectangles.
func (r Rectangle) Meet(other Rectangle) Rectangle {
	return Rectangle{
		X:    max(r.X, other.X),
		Y:    max(r.Y, other.Y),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
}

// Join returns a rectangle that contains both.
func (r Rectangle) Join(other Rectangle) Rectangle {
	return Rectangle{
		X:    min(r.X, other.X),
		Y:    min(r.Y, other.Y),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// Inset removes border from all sides. When the rectangle is smaller
// than border in some dimension the result is empty, contained in the
// original rectangle, but otherwise unspecified.
func (r Rectangle) Inset(border uint32) Rectangle {
	out := Rectangle{
		X:    r.X + border,
		Y:    r.Y + border,
		MaxX: r.MaxX,
		MaxY: r.MaxY,
	}
	if out.X < r.X { // wrapped
		out.X = ^uint32(0)
	}
	if out.Y < r.Y {
		out.Y = ^uint32(0)
	}
	if r.MaxX >= border {
		out.MaxX = r.MaxX - border
	} else {
		out.MaxX = 0
	}
	if r.MaxY >= border {
		out.MaxY = r.MaxY - border
	} else {
		out.MaxY = 0
	}
	return out
}
