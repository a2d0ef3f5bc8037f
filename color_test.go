// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"math"
	"testing"
)

func TestWhitepointToXYZ(t *testing.T) {
	whitepoints := []Whitepoint{
		WhitepointA, WhitepointB, WhitepointC, WhitepointD50, WhitepointD55,
		WhitepointD65, WhitepointD75, WhitepointE, WhitepointF2, WhitepointF7,
		WhitepointF11,
	}
	for _, w := range whitepoints {
		xyz := w.ToXYZ()
		// Illuminants are normalized to unit luminance.
		if xyz[1] != 1.0 {
			t.Errorf("whitepoint %d: Y = %v, want 1", w, xyz[1])
		}
	}
}

func TestPrimariesToXYZ(t *testing.T) {
	tests := []struct {
		name      string
		primaries Primaries
		white     Whitepoint
	}{
		{"bt709 d65", PrimariesBt709, WhitepointD65},
		{"bt601 line525 d65", PrimariesBt601Line525, WhitepointD65},
		{"bt2020 d65", PrimariesBt2020, WhitepointD65},
		{"bt709 d50", PrimariesBt709, WhitepointD50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.primaries.ToXYZ(tt.white)
			// Full-intensity RGB must land exactly on the whitepoint.
			got := m.MulColumn([3]float32{1, 1, 1})
			want := tt.white.ToXYZ()
			for i := range got {
				if math.Abs(float64(got[i]-want[i])) > 1e-4 {
					t.Fatalf("white reproduction = %v, want %v", got, want)
				}
			}
			if !m.IsFinite() {
				t.Error("conversion matrix is not finite")
			}
		})
	}
}

func TestPrimariesToXYZKnownValues(t *testing.T) {
	// The canonical sRGB matrix, see the Lindbloom tables.
	m := PrimariesBt709.ToXYZ(WhitepointD65)
	want := RowMatrix{
		0.4124564, 0.3575761, 0.1804375,
		0.2126729, 0.7151522, 0.0721750,
		0.0193339, 0.1191920, 0.9503041,
	}
	matrixNear(t, m, want, 1e-4)
}

func TestColorIsXYZClass(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  bool
	}{
		{"srgb", ColorSRGB, true},
		{"bt709", ColorBT709, true},
		{"scalars", ColorScalars(TransferLinear), false},
		{"oklab", Color{Model: ColorModelOklab}, false},
		{"none", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.IsXYZClass(); got != tt.want {
				t.Errorf("IsXYZClass() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorCompatible(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		parts SampleParts
		want  bool
	}{
		{"rgb full", ColorSRGB, PartsRGBA, true},
		{"rgb padded", ColorSRGB, PartsRGBx, true},
		{"rgb single channel", ColorSRGB, PartsR, true},
		{"rgb luma", ColorSRGB, PartsLuma, false},
		{"rgb lch", ColorSRGB, PartsLCh, false},
		{"oklab lch", Color{Model: ColorModelOklab}, PartsLCh, true},
		{"oklab lcha", Color{Model: ColorModelOklab}, PartsLChA, true},
		{"oklab rgb", Color{Model: ColorModelOklab}, PartsRGB, false},
		{"scalars anything", ColorScalars(TransferLinear), PartsYuv, true},
		{"none", Color{}, PartsRGB, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Compatible(tt.parts); got != tt.want {
				t.Errorf("Compatible(%d) = %v, want %v", tt.parts, got, tt.want)
			}
		})
	}
}
