// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

// ColorModel names the family of a color interpretation. The set is
// open; new models are dispatched through the predicate methods on
// [Color] so a new variant touches a bounded set of call sites.
type ColorModel uint8

const (
	// ColorModelNone marks an absent or unconfigured color.
	ColorModelNone ColorModel = iota

	// ColorModelRGB is an additive model based on the CIE 1931 XYZ
	// observers. Its linear representation is screen-space linear RGB,
	// derived from the encoded form through the transfer function and
	// anchored by primaries, whitepoint and reference luminance.
	ColorModelRGB

	// ColorModelOklab is the perceptual Oklab space by Björn Ottoson.
	// Quantized components may be either Lab or LCh.
	ColorModelOklab

	// ColorModelScalars is a group of scalar values with no assigned
	// physical meaning, used for ramps and sampling coefficients.
	ColorModelScalars
)

// Color identifies a color representation: the model by which channel
// numbers relate to physical quantities.
//
// These are not the numbers used in image operations. Operations work on
// an associated linear representation; Color records how to reach it.
// Color is a comparable value: two texels agree on color exactly when
// their Color values are equal.
type Color struct {
	Model ColorModel

	// Primaries, Transfer, Whitepoint and Luminance parameterize the
	// RGB model. Transfer alone parameterizes Scalars (how points are
	// encoded, as if they were RGB-ish values). All are zero for other
	// models.
	Primaries  Primaries
	Transfer   Transfer
	Whitepoint Whitepoint
	Luminance  Luminance
}

// ColorSRGB is the sRGB color representation.
var ColorSRGB = Color{
	Model:      ColorModelRGB,
	Primaries:  PrimariesBt709,
	Transfer:   TransferSrgb,
	Whitepoint: WhitepointD65,
	Luminance:  LuminanceSdr,
}

// ColorBT709 is the Bt.709 color representation.
var ColorBT709 = Color{
	Model:      ColorModelRGB,
	Primaries:  PrimariesBt709,
	Transfer:   TransferBt709,
	Whitepoint: WhitepointD65,
	Luminance:  LuminanceSdr,
}

// ColorScalars returns the scalar pseudo-color with the given transfer.
// Use TransferLinear to leave values unencoded.
func ColorScalars(transfer Transfer) Color {
	return Color{Model: ColorModelScalars, Transfer: transfer}
}

// IsXYZClass reports whether the color is anchored in the CIE XYZ
// observer space, i.e. whether it can be re-encoded into another
// XYZ-class color that shares its reference whitepoint.
func (c Color) IsXYZClass() bool {
	return c.Model == ColorModelRGB
}

// Compatible reports whether the color model can carry the sample
// parts. For example an RGB color is expressed through a subset of RGB
// channels, while Oklab uses the polar LCh form. An alpha component can
// always accompany a color. The scalar pseudo-color accepts anything:
// the user assigns the meaning of each channel.
func (c Color) Compatible(parts SampleParts) bool {
	switch c.Model {
	case ColorModelRGB:
		switch parts {
		case PartsR, PartsG, PartsB, PartsRGB, PartsRGBA, PartsRGBx, PartsXRGB, PartsBGRx, PartsXBGR:
			return true
		}
		return false
	case ColorModelOklab:
		return parts == PartsLCh || parts == PartsLChA
	case ColorModelScalars:
		return true
	}
	return false
}

// Transfer functions from encoded chromatic samples to physical
// quantity: a pair of mutually inverse functions (EOTF/OETF) applied to
// each stimulus value.
type Transfer uint8

const (
	// TransferLinear is linear color in display luminance.
	TransferLinear Transfer = iota

	// TransferSrgb is the non-linear electrical data of sRGB.
	TransferSrgb

	// TransferBt709 is the non-linear electrical data of Bt.709.
	TransferBt709

	// TransferBt470M is the non-linear electrical data of Bt.470M.
	TransferBt470M

	// TransferBt601 is the non-linear electrical data of Bt.601.
	TransferBt601

	// TransferSmpte240 is the non-linear electrical data of Smpte-240.
	TransferSmpte240

	// TransferBt2020Bit10 is Bt.2020 electrical data, 10-bit quantized.
	TransferBt2020Bit10

	// TransferBt2020Bit12 is Bt.2020 electrical data, 12-bit quantized.
	TransferBt2020Bit12

	// TransferSmpte2084 is the perceptual quantizer of Smpte-2084,
	// also known as Bt.2100 PQ.
	TransferSmpte2084

	// TransferBt2100Hlg is Bt.2100 Hybrid-Log-Gamma.
	TransferBt2100Hlg

	// TransferBt2100Scene is linear color in scene luminance of
	// Bt.2100. Treated as linear but kept distinct so the type system
	// flags accidental mixing with display-linear data.
	TransferBt2100Scene
)

// Luminance is the reference brightness of a color specification.
type Luminance uint8

const (
	// LuminanceSdr is 100 cd/m².
	LuminanceSdr Luminance = iota

	// LuminanceHdr is 10000 cd/m², high-dynamic range.
	LuminanceHdr

	// LuminanceAdobeRGB is 160 cd/m².
	LuminanceAdobeRGB
)

// Primaries is the relative stimuli of the three corners of a
// triangular gamut.
type Primaries uint8

const (
	PrimariesBt601Line525 Primaries = iota
	PrimariesBt601Line625
	PrimariesBt709
	PrimariesSmpte240
	PrimariesBt2020
	PrimariesBt2100
)

// Whitepoint is the standard illuminant a color is referenced to.
type Whitepoint uint8

const (
	WhitepointA Whitepoint = iota
	WhitepointB
	WhitepointC
	WhitepointD50
	WhitepointD55
	WhitepointD65
	WhitepointD75
	WhitepointE
	WhitepointF2
	WhitepointF7
	WhitepointF11
)

// ToXYZ returns the CIE XYZ coordinates of the illuminant.
func (w Whitepoint) ToXYZ() [3]float32 {
	switch w {
	case WhitepointA:
		return [3]float32{1.09850, 1.00000, 0.35585}
	case WhitepointB:
		return [3]float32{0.99072, 1.00000, 0.85223}
	case WhitepointC:
		return [3]float32{0.98074, 1.00000, 1.18232}
	case WhitepointD50:
		return [3]float32{0.96422, 1.00000, 0.82521}
	case WhitepointD55:
		return [3]float32{0.95682, 1.00000, 0.92149}
	case WhitepointD65:
		return [3]float32{0.95047, 1.00000, 1.08883}
	case WhitepointD75:
		return [3]float32{0.94972, 1.00000, 1.22638}
	case WhitepointE:
		return [3]float32{1.00000, 1.00000, 1.00000}
	case WhitepointF2:
		return [3]float32{0.99186, 1.00000, 0.67393}
	case WhitepointF7:
		return [3]float32{0.95041, 1.00000, 1.08747}
	case WhitepointF11:
		return [3]float32{1.00962, 1.00000, 0.64350}
	}
	return [3]float32{}
}

// ToXYZ returns the RGB→XYZ conversion matrix for these primaries
// under the given whitepoint.
func (p Primaries) ToXYZ(white Whitepoint) RowMatrix {
	// Chromaticity coordinates (x, y) of the red, green and blue
	// corners. See the color spaces with RGB primaries tables.
	var xy [3][2]float32
	switch p {
	case PrimariesBt601Line525, PrimariesSmpte240:
		xy = [3][2]float32{{0.63, 0.34}, {0.31, 0.595}, {0.155, 0.07}}
	case PrimariesBt601Line625:
		xy = [3][2]float32{{0.64, 0.33}, {0.29, 0.6}, {0.15, 0.06}}
	case PrimariesBt709:
		xy = [3][2]float32{{0.64, 0.33}, {0.30, 0.60}, {0.15, 0.06}}
	case PrimariesBt2020, PrimariesBt2100:
		xy = [3][2]float32{{0.708, 0.292}, {0.170, 0.797}, {0.131, 0.046}}
	}

	// A column of CIE XYZ intensities for one primary.
	xyz := func(c [2]float32) [3]float32 {
		x, y := c[0], c[1]
		return [3]float32{x / y, 1.0, (1 - x - y) / y}
	}

	xyzR := xyz(xy[0])
	xyzG := xyz(xy[1])
	xyzB := xyz(xy[2])

	// N = [xyz_r | xyz_g | xyz_b] is the unweighted conversion for
	// XYZ = N · RGB. Solve W = N · S for the channel weights S that
	// reproduce the whitepoint, per Lindbloom.
	n1 := ColMatrix{xyzR, xyzG, xyzB}.Inv()
	w := white.ToXYZ()

	s := [3]float32{
		w[0]*n1[0] + w[1]*n1[1] + w[2]*n1[2],
		w[0]*n1[3] + w[1]*n1[4] + w[2]*n1[5],
		w[0]*n1[6] + w[1]*n1[7] + w[2]*n1[8],
	}

	return RowMatrix{
		s[0] * xyzR[0], s[1] * xyzG[0], s[2] * xyzB[0],
		s[0] * xyzR[1], s[1] * xyzG[1], s[2] * xyzB[1],
		s[0] * xyzR[2], s[1] * xyzG[2], s[2] * xyzB[2],
	}
}
