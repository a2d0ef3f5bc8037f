// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"errors"
	"math"
	"testing"
)

var rgba8 = Texel{
	Block:   BlockPixel,
	Samples: Samples{Parts: PartsRGBA, Bits: BitsInt8x4},
	Color:   ColorSRGB,
}

func mustDescriptor(t *testing.T, texel Texel, width, height uint32) Descriptor {
	t.Helper()
	desc, err := NewDescriptor(texel, width, height)
	if err != nil {
		t.Fatalf("NewDescriptor(%dx%d): %v", width, height, err)
	}
	return desc
}

func TestNewBufferLayout(t *testing.T) {
	tests := []struct {
		name string
		rows RowLayout
		ok   bool
	}{
		{"tight", RowLayout{Width: 4, Height: 4, TexelStride: 4, RowStride: 16}, true},
		{"padded rows", RowLayout{Width: 4, Height: 4, TexelStride: 4, RowStride: 64}, true},
		{"empty", RowLayout{}, true},
		{"aliasing rows", RowLayout{Width: 8, Height: 2, TexelStride: 4, RowStride: 16}, false},
		{"oversized texel", RowLayout{Width: 1, Height: 1, TexelStride: 300, RowStride: 300}, false},
		{"row stride overflow", RowLayout{Width: 1, Height: 1, TexelStride: 1, RowStride: math.MaxUint32 + 1}, false},
		{"total overflow", RowLayout{Width: 1, Height: math.MaxUint32, TexelStride: 1, RowStride: math.MaxUint32}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewBufferLayout(tt.rows)
			if tt.ok != (err == nil) {
				t.Fatalf("NewBufferLayout err = %v, want ok = %v", err, tt.ok)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidLayout) {
					t.Errorf("error %v does not wrap ErrInvalidLayout", err)
				}
				return
			}
			if got := layout.RowLayout(); got != tt.rows {
				t.Errorf("RowLayout() = %+v, want %+v", got, tt.rows)
			}
		})
	}
}

func TestBufferLayoutLengths(t *testing.T) {
	layout, err := NewBufferLayout(RowLayout{Width: 10, Height: 5, TexelStride: 4, RowStride: 48})
	if err != nil {
		t.Fatalf("NewBufferLayout: %v", err)
	}
	if got := layout.ByteLen(); got != 240 {
		t.Errorf("ByteLen() = %d, want 240", got)
	}
	if got := layout.Len64(); got != 240 {
		t.Errorf("Len64() = %d, want 240", got)
	}
}

func TestLayoutForTexel(t *testing.T) {
	layout, err := LayoutForTexel(rgba8, 16, 9)
	if err != nil {
		t.Fatalf("LayoutForTexel: %v", err)
	}
	want := BufferLayout{Width: 16, Height: 9, BytesPerTexel: 4, BytesPerRow: 64}
	if layout != want {
		t.Errorf("LayoutForTexel = %+v, want %+v", layout, want)
	}
}

func TestImageBuffer(t *testing.T) {
	layout, err := LayoutForTexel(rgba8, 2, 2)
	if err != nil {
		t.Fatalf("LayoutForTexel: %v", err)
	}
	buf := NewImageBuffer(layout)
	if len(buf.Bytes()) != layout.ByteLen() {
		t.Fatalf("buffer has %d bytes, want %d", len(buf.Bytes()), layout.ByteLen())
	}

	buf.Bytes()[0] = 0xaa
	clone := buf.Clone()
	if clone.Bytes()[0] != 0xaa {
		t.Error("Clone did not copy the data")
	}
	clone.Bytes()[0] = 0x55
	if buf.Bytes()[0] != 0xaa {
		t.Error("Clone aliases the original buffer")
	}
}

func TestDescriptorConsistency(t *testing.T) {
	desc := mustDescriptor(t, rgba8, 8, 8)
	if !desc.IsConsistent() {
		t.Error("descriptor from NewDescriptor is inconsistent")
	}

	// A texel whose byte size contradicts the layout.
	desc.Texel.Samples.Bits = BitsInt8
	if desc.IsConsistent() {
		t.Error("contradictory descriptor reported consistent")
	}
}

func TestDescriptorPixelSize(t *testing.T) {
	tests := []struct {
		name          string
		block         Block
		width, height uint32
		pixW, pixH    uint32
	}{
		{"pixel", BlockPixel, 8, 8, 8, 8},
		{"1x2", Block1x2, 8, 8, 16, 8},
		{"2x2", Block2x2, 8, 8, 16, 16},
		{"4x4", Block4x4, 3, 2, 12, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texel := rgba8
			texel.Block = tt.block
			desc := mustDescriptor(t, texel, tt.width, tt.height)
			if got := desc.PixelWidth(); got != tt.pixW {
				t.Errorf("PixelWidth() = %d, want %d", got, tt.pixW)
			}
			if got := desc.PixelHeight(); got != tt.pixH {
				t.Errorf("PixelHeight() = %d, want %d", got, tt.pixH)
			}
			w, h := desc.Size()
			if w != tt.width || h != tt.height {
				t.Errorf("Size() = %d, %d, want %d, %d", w, h, tt.width, tt.height)
			}
		})
	}
}
