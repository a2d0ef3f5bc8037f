// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import "github.com/gogpu/gputypes"

// Texel describes the smallest addressable unit of image data: which
// pixels one texel covers, how values are encoded into its bytes, and
// which color those values represent.
//
// Texel is a comparable value. Operations that require matching texels
// compare with ==.
type Texel struct {
	// Block is which part of the image a single texel refers to.
	Block Block
	// Samples is how numbers and channels are encoded into the texel.
	Samples Samples
	// Color is how the numbers relate to physical quantities.
	Color Color
}

// Samples is the bit encoding of values within the texel bytes.
type Samples struct {
	// Parts is which values are encoded, controlling the applicable
	// color spaces.
	Parts SampleParts
	// Bits is how the values are laid out as bits in the bytes.
	Bits SampleBits
}

// Block describes the pixel footprint of one texel.
type Block uint8

const (
	// BlockPixel covers a single pixel per texel.
	BlockPixel Block = iota
	// Block1x2 covers two pixels across the width.
	Block1x2
	// Block1x4 covers four pixels across the width.
	Block1x4
	// Block2x2 covers a two-by-two block.
	Block2x2
	// Block2x4 covers a two-by-four block.
	Block2x4
	// Block4x4 covers a four-by-four block.
	Block4x4
)

// Width returns the pixel width of the block.
func (b Block) Width() uint32 {
	switch b {
	case Block1x2, Block2x2:
		return 2
	case Block1x4, Block2x4, Block4x4:
		return 4
	}
	return 1
}

// Height returns the pixel height of the block.
func (b Block) Height() uint32 {
	switch b {
	case Block2x2, Block2x4:
		return 2
	case Block4x4:
		return 4
	}
	return 1
}

// SampleParts describes which values are present in a texel.
//
// This is some set of channels that pin down a color point precisely,
// given a color model. An x names a channel that is encoded but
// disregarded, i.e. padding; the alpha variants preserve that slot
// instead. The set is open for future formats.
type SampleParts uint16

const (
	PartsA SampleParts = iota
	PartsR
	PartsG
	PartsB
	PartsLuma
	PartsLumaA
	PartsRGB
	PartsBGR
	PartsRGBA
	PartsRGBx
	PartsBGRA
	PartsBGRx
	PartsARGB
	PartsXRGB
	PartsABGR
	PartsXBGR
	PartsYuv
	PartsLab
	PartsLabA
	PartsLCh
	PartsLChA
)

// NumComponents returns the number of encoded components, padding
// included.
func (p SampleParts) NumComponents() int {
	switch p {
	case PartsA, PartsR, PartsG, PartsB, PartsLuma:
		return 1
	case PartsLumaA:
		return 2
	case PartsRGB, PartsBGR, PartsYuv, PartsLCh, PartsLab:
		return 3
	case PartsRGBA, PartsBGRA, PartsRGBx, PartsBGRx, PartsARGB, PartsXRGB, PartsABGR, PartsXBGR, PartsLChA, PartsLabA:
		return 4
	}
	return 0
}

// SampleBits describes how sample values are packed into bytes.
// The set is open for future formats.
type SampleBits uint8

const (
	// BitsInt8 is a single 8-bit integer.
	BitsInt8 SampleBits = iota
	// BitsInt332 is three packed integers, 3-3-2.
	BitsInt332
	// BitsInt233 is three packed integers, 2-3-3.
	BitsInt233
	// BitsInt16 is a single 16-bit integer.
	BitsInt16
	// BitsInt4x4 is four packed 4-bit integers.
	BitsInt4x4
	// BitsInt565 is three packed integers, 5-6-5.
	BitsInt565
	// BitsInt8x2 is two 8-bit integers.
	BitsInt8x2
	// BitsInt8x3 is three 8-bit integers.
	BitsInt8x3
	// BitsInt8x4 is four 8-bit integers.
	BitsInt8x4
	// BitsInt16x2 is two 16-bit integers.
	BitsInt16x2
	// BitsInt16x3 is three 16-bit integers.
	BitsInt16x3
	// BitsInt16x4 is four 16-bit integers.
	BitsInt16x4
	// BitsInt1010102 is four packed integers, 10-10-10-2.
	BitsInt1010102
	// BitsInt2101010 is four packed integers, 2-10-10-10.
	BitsInt2101010
	// BitsFloat16x4 is four half floats.
	BitsFloat16x4
	// BitsFloat32x4 is four 32-bit floats.
	BitsFloat32x4
)

// Bytes returns the number of bytes of a texel with these samples.
func (b SampleBits) Bytes() int {
	switch b {
	case BitsInt8, BitsInt332, BitsInt233:
		return 1
	case BitsInt16, BitsInt565, BitsInt4x4, BitsInt8x2:
		return 2
	case BitsInt8x3:
		return 3
	case BitsInt8x4, BitsInt16x2, BitsInt1010102, BitsInt2101010:
		return 4
	case BitsInt16x3:
		return 6
	case BitsInt16x4, BitsFloat16x4:
		return 8
	case BitsFloat32x4:
		return 16
	}
	return 0
}

// ColorChannel identifies a single channel from an image, as used by
// extract and inject. It can be thought of as an index into the vector
// of channels belonging to a color.
type ColorChannel uint8

const (
	// ChannelR is the weight of the red primary.
	ChannelR ColorChannel = iota
	// ChannelG is the weight of the green primary.
	ChannelG
	// ChannelB is the weight of the blue primary.
	ChannelB
	// ChannelLuma is a luminescence. YCbCr is composed of Luma, Cb and
	// Cr; keeping Luma distinct from the standard observer Y avoids
	// their gnarly overlap.
	ChannelLuma
	// ChannelAlpha is an alpha/translucence component.
	ChannelAlpha
	// ChannelCb is the blue-channel difference.
	ChannelCb
	// ChannelCr is the red-channel difference.
	ChannelCr
	// ChannelL is perceptual lightness.
	ChannelL
	// ChannelLabA is the a (green/red) component of a Lab color.
	ChannelLabA
	// ChannelLabB is the b (blue/yellow) component of a Lab color.
	ChannelLabB
	// ChannelC is the chroma of a Lab color, hypot(a, b).
	ChannelC
	// ChannelHue is the hue of a Lab based color, atan2(b, a).
	ChannelHue
	// ChannelX is the first CIE standard observer.
	ChannelX
	// ChannelY is the second CIE standard observer.
	ChannelY
	// ChannelZ is the third CIE standard observer.
	ChannelZ
	ChannelScalar0
	ChannelScalar1
	ChannelScalar2
)

// ChannelTexel returns the texel describing a single channel of t.
// It returns false if the channel is not contained in the sample parts
// or cannot be extracted on its own.
func (t Texel) ChannelTexel(channel ColorChannel) (Texel, bool) {
	var parts SampleParts
	switch t.Samples.Parts {
	case PartsRGB, PartsRGBx, PartsBGRx, PartsXRGB, PartsXBGR, PartsBGR:
		switch channel {
		case ChannelR:
			parts = PartsR
		case ChannelG:
			parts = PartsG
		case ChannelB:
			parts = PartsB
		default:
			return Texel{}, false
		}
	case PartsRGBA, PartsBGRA, PartsABGR, PartsARGB:
		switch channel {
		case ChannelR:
			parts = PartsR
		case ChannelG:
			parts = PartsG
		case ChannelB:
			parts = PartsB
		case ChannelAlpha:
			parts = PartsA
		default:
			return Texel{}, false
		}
	default:
		return Texel{}, false
	}

	var bits SampleBits
	switch t.Samples.Bits {
	case BitsInt8, BitsInt8x3, BitsInt8x4:
		bits = BitsInt8
	default:
		return Texel{}, false
	}

	return Texel{
		Block:   t.Block,
		Samples: Samples{Parts: parts, Bits: bits},
		Color:   t.Color,
	}, true
}

// TextureFormat translates the texel encoding into a device texture
// format. It is the single translation point between the open sample
// tag sets and the wgpu format enumeration; extending either side only
// touches this function. It returns false when the encoding has no
// direct device representation, in which case an executor must stage
// the data through a host-side conversion.
func (t Texel) TextureFormat() (gputypes.TextureFormat, bool) {
	switch t.Samples {
	case Samples{Parts: PartsRGBA, Bits: BitsInt8x4}:
		return gputypes.TextureFormatRGBA8Unorm, true
	case Samples{Parts: PartsBGRA, Bits: BitsInt8x4}:
		return gputypes.TextureFormatBGRA8Unorm, true
	case Samples{Parts: PartsLuma, Bits: BitsInt8}, Samples{Parts: PartsR, Bits: BitsInt8}, Samples{Parts: PartsA, Bits: BitsInt8}:
		return gputypes.TextureFormatR8Unorm, true
	}
	return 0, false
}
