// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"errors"
	"fmt"
	"math"
)

// Layout errors.
var (
	// ErrInvalidLayout is returned when a requested byte layout does
	// not fit in addressable memory or would alias within a row.
	ErrInvalidLayout = errors.New("pix: invalid buffer layout")
)

// BufferLayout is the byte layout of an image buffer.
//
// An inner invariant is that the layout fits in memory: the total byte
// length fits an int and a uint64 at the same time. Constructors
// enforce this, which keeps the length queries below overflow-free.
type BufferLayout struct {
	// Width is the number of texels along the width.
	Width uint32
	// Height is the number of texels along the height.
	Height uint32
	// BytesPerTexel is the byte size of one texel. No real texel
	// exceeds a byte-sized count.
	BytesPerTexel uint8
	// BytesPerRow is the row stride in bytes.
	BytesPerRow uint32
}

// RowLayout describes a row-major rectangular matrix layout.
//
// This is only concerned with byte-buffer compatibility, not with type
// or color semantics of texels. It assumes a row-major layout without
// space between the texels of a row. Convert it to a usable
// [BufferLayout] with [NewBufferLayout].
type RowLayout struct {
	Width       uint32
	Height      uint32
	TexelStride uint64
	RowStride   uint64
}

// NewBufferLayout validates a row layout and converts it into a buffer
// layout.
func NewBufferLayout(rows RowLayout) (BufferLayout, error) {
	if rows.TexelStride > math.MaxUint8 {
		return BufferLayout{}, fmt.Errorf("%w: texel stride %d", ErrInvalidLayout, rows.TexelStride)
	}
	if rows.RowStride > math.MaxUint32 {
		return BufferLayout{}, fmt.Errorf("%w: row stride %d", ErrInvalidLayout, rows.RowStride)
	}

	// Rows must not alias: a full row of texels fits the stride.
	rowBytes := rows.TexelStride * uint64(rows.Width)
	if rowBytes > rows.RowStride {
		return BufferLayout{}, fmt.Errorf("%w: %d texel bytes per row exceed stride %d", ErrInvalidLayout, rowBytes, rows.RowStride)
	}

	// The total length must fit an int.
	total := rows.RowStride * uint64(rows.Height)
	if rows.Height != 0 && total/uint64(rows.Height) != rows.RowStride {
		return BufferLayout{}, fmt.Errorf("%w: byte length overflows", ErrInvalidLayout)
	}
	if total > uint64(math.MaxInt) {
		return BufferLayout{}, fmt.Errorf("%w: byte length %d exceeds addressable memory", ErrInvalidLayout, total)
	}

	return BufferLayout{
		Width:         rows.Width,
		Height:        rows.Height,
		BytesPerTexel: uint8(rows.TexelStride),
		BytesPerRow:   uint32(rows.RowStride),
	}, nil
}

// LayoutForTexel creates a tightly packed buffer layout for the given
// texel encoding and texel dimensions.
func LayoutForTexel(texel Texel, width, height uint32) (BufferLayout, error) {
	stride := uint64(texel.Samples.Bits.Bytes())
	return NewBufferLayout(RowLayout{
		Width:       width,
		Height:      height,
		TexelStride: stride,
		// NewBufferLayout re-checks the multiplication.
		RowStride: uint64(width) * stride,
	})
}

// ByteLen returns the total memory usage in bytes.
func (l BufferLayout) ByteLen() int {
	// No overflow due to the constructor invariant.
	return int(l.BytesPerRow) * int(l.Height)
}

// Len64 returns the total memory usage as a uint64, the unit device
// APIs speak.
func (l BufferLayout) Len64() uint64 {
	return uint64(l.BytesPerRow) * uint64(l.Height)
}

// RowLayout returns a row descriptor that can store all bytes of the
// layout.
func (l BufferLayout) RowLayout() RowLayout {
	return RowLayout{
		Width:       l.Width,
		Height:      l.Height,
		TexelStride: uint64(l.BytesPerTexel),
		RowStride:   uint64(l.BytesPerRow),
	}
}

// ImageBuffer is a host-allocated byte buffer with a known layout.
type ImageBuffer struct {
	layout BufferLayout
	data   []byte
}

// NewImageBuffer allocates a zeroed host buffer for the layout.
func NewImageBuffer(layout BufferLayout) *ImageBuffer {
	return &ImageBuffer{
		layout: layout,
		data:   make([]byte, layout.ByteLen()),
	}
}

// Layout returns the buffer's byte layout.
func (b *ImageBuffer) Layout() BufferLayout {
	return b.layout
}

// Bytes returns the backing bytes. The slice aliases the buffer.
func (b *ImageBuffer) Bytes() []byte {
	return b.data
}

// Clone returns a deep copy of the buffer.
func (b *ImageBuffer) Clone() *ImageBuffer {
	out := NewImageBuffer(b.layout)
	copy(out.data, b.data)
	return out
}

// Descriptor describes an image semantically: its byte layout paired
// with the interpretation of each texel.
//
// Descriptors are immutable values. Builder methods and the pool derive
// new descriptors instead of mutating one in place.
type Descriptor struct {
	// Layout is the byte and physical layout of the buffer.
	Layout BufferLayout
	// Texel describes how each single texel is interpreted.
	Texel Texel
}

// NewDescriptor creates a consistent descriptor for a texel encoding
// and texel dimensions.
func NewDescriptor(texel Texel, width, height uint32) (Descriptor, error) {
	layout, err := LayoutForTexel(texel, width, height)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Layout: layout, Texel: texel}, nil
}

// IsConsistent reports whether the descriptor makes inherent sense,
// i.e. its fields do not contradict each other. In particular the
// texel's declared byte size must agree with the layout.
func (d Descriptor) IsConsistent() bool {
	return d.Texel.Samples.Bits.Bytes() == int(d.Layout.BytesPerTexel)
}

// ChannelTexel returns the texel describing a single channel of the
// image. It returns false if the channel is not contained, or cannot be
// extracted on its own.
func (d Descriptor) ChannelTexel(channel ColorChannel) (Texel, bool) {
	return d.Texel.ChannelTexel(channel)
}

// PixelWidth returns the total number of pixels in width, accounting
// for the block footprint of each texel.
func (d Descriptor) PixelWidth() uint32 {
	return d.Layout.Width * d.Texel.Block.Width()
}

// PixelHeight returns the total number of pixels in height.
func (d Descriptor) PixelHeight() uint32 {
	return d.Layout.Height * d.Texel.Block.Height()
}

// Size returns the texel dimensions of the layout.
func (d Descriptor) Size() (width, height uint32) {
	return d.Layout.Width, d.Layout.Height
}
