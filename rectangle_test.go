// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import "testing"

func TestRectangleDimensions(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rectangle
		width  uint32
		height uint32
		empty  bool
	}{
		{"origin", Rect(4, 3), 4, 3, false},
		{"offset", Rectangle{X: 2, Y: 2, MaxX: 6, MaxY: 5}, 4, 3, false},
		{"zero width", Rectangle{X: 3, Y: 0, MaxX: 3, MaxY: 5}, 0, 5, true},
		{"inverted x", Rectangle{X: 5, Y: 0, MaxX: 1, MaxY: 5}, 0, 5, true},
		{"inverted y", Rectangle{X: 0, Y: 7, MaxX: 5, MaxY: 2}, 5, 0, true},
		{"empty at origin", Rect(0, 0), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
			if got := tt.rect.Height(); got != tt.height {
				t.Errorf("Height() = %d, want %d", got, tt.height)
			}
			if got := tt.rect.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestRectangleNormalize(t *testing.T) {
	tests := []struct {
		name string
		rect Rectangle
	}{
		{"proper", Rectangle{X: 1, Y: 2, MaxX: 5, MaxY: 9}},
		{"inverted x", Rectangle{X: 5, Y: 2, MaxX: 1, MaxY: 9}},
		{"inverted both", Rectangle{X: 5, Y: 9, MaxX: 1, MaxY: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.rect.Normalize()
			if n.Width() != tt.rect.Width() || n.Height() != tt.rect.Height() {
				t.Errorf("Normalize() changed dimensions: %v -> %v", tt.rect, n)
			}
			if n.X > n.MaxX || n.Y > n.MaxY {
				t.Errorf("Normalize() = %v is not ordered", n)
			}
			if n.Normalize() != n {
				t.Errorf("Normalize() is not idempotent: %v -> %v", n, n.Normalize())
			}
		})
	}
}

func TestRectangleContains(t *testing.T) {
	outer := Rectangle{X: 2, Y: 2, MaxX: 10, MaxY: 8}
	tests := []struct {
		name  string
		inner Rectangle
		want  bool
	}{
		{"itself", outer, true},
		{"strictly inside", Rectangle{X: 3, Y: 3, MaxX: 9, MaxY: 7}, true},
		{"shared corner", Rectangle{X: 2, Y: 2, MaxX: 5, MaxY: 5}, true},
		{"sticks out right", Rectangle{X: 8, Y: 3, MaxX: 11, MaxY: 7}, false},
		{"left of min", Rectangle{X: 0, Y: 3, MaxX: 5, MaxY: 7}, false},
		{"empty inside", Rectangle{X: 5, Y: 5, MaxX: 5, MaxY: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestRectangleMeetJoin(t *testing.T) {
	a := Rectangle{X: 0, Y: 0, MaxX: 6, MaxY: 6}
	b := Rectangle{X: 4, Y: 2, MaxX: 10, MaxY: 8}

	meet := a.Meet(b)
	if want := (Rectangle{X: 4, Y: 2, MaxX: 6, MaxY: 6}); meet != want {
		t.Errorf("Meet = %v, want %v", meet, want)
	}
	if !a.Contains(meet) || !b.Contains(meet) {
		t.Error("meet is not contained in both operands")
	}

	join := a.Join(b)
	if want := (Rectangle{X: 0, Y: 0, MaxX: 10, MaxY: 8}); join != want {
		t.Errorf("Join = %v, want %v", join, want)
	}
	if !join.Contains(a) || !join.Contains(b) {
		t.Error("join does not contain both operands")
	}

	// Disjoint rectangles meet in an empty rectangle.
	c := Rectangle{X: 20, Y: 20, MaxX: 30, MaxY: 30}
	if got := a.Meet(c); !got.Empty() {
		t.Errorf("Meet of disjoint rectangles = %v, want empty", got)
	}
}

func TestRectangleInset(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rectangle
		border uint32
		want   Rectangle
	}{
		{"interior", Rectangle{X: 2, Y: 2, MaxX: 10, MaxY: 10}, 2, Rectangle{X: 4, Y: 4, MaxX: 8, MaxY: 8}},
		{"zero border", Rect(5, 5), 0, Rect(5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Inset(tt.border); got != tt.want {
				t.Errorf("Inset(%d) = %v, want %v", tt.border, got, tt.want)
			}
		})
	}

	// Oversized borders collapse to an empty result within the original.
	r := Rect(3, 3)
	got := r.Inset(5)
	if !got.Empty() {
		t.Errorf("Inset(5) of %v = %v, want empty", r, got)
	}
}

func TestRectOf(t *testing.T) {
	layout, err := NewBufferLayout(RowLayout{Width: 12, Height: 7, TexelStride: 4, RowStride: 48})
	if err != nil {
		t.Fatalf("NewBufferLayout: %v", err)
	}
	if got, want := RectOf(layout), Rect(12, 7); got != want {
		t.Errorf("RectOf = %v, want %v", got, want)
	}
}
