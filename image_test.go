// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"image"
	"image/color"
	"testing"
)

func TestTexelForImage(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		samples Samples
		ok      bool
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), Samples{Parts: PartsLuma, Bits: BitsInt8}, true},
		{"gray16", image.NewGray16(image.Rect(0, 0, 2, 2)), Samples{Parts: PartsLuma, Bits: BitsInt16}, true},
		{"alpha", image.NewAlpha(image.Rect(0, 0, 2, 2)), Samples{Parts: PartsA, Bits: BitsInt8}, true},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 2, 2)), Samples{Parts: PartsRGBA, Bits: BitsInt8x4}, true},
		{"rgba64", image.NewRGBA64(image.Rect(0, 0, 2, 2)), Samples{Parts: PartsRGBA, Bits: BitsInt16x4}, true},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), Samples{}, false},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black}), Samples{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texel, ok := TexelForImage(tt.img)
			if ok != tt.ok {
				t.Fatalf("TexelForImage ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if texel.Samples != tt.samples {
				t.Errorf("samples = %+v, want %+v", texel.Samples, tt.samples)
			}
			if texel.Color != ColorSRGB {
				t.Errorf("color = %+v, want sRGB", texel.Color)
			}
		})
	}
}

func TestInsertImageRoundtrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 100), B: 0x10, A: 0xff})
		}
	}

	pool := NewPool()
	entry, err := pool.InsertImage(src)
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	desc, ok := entry.Descriptor()
	if !ok {
		t.Fatal("inserted image has no resolvable descriptor")
	}
	if desc.Texel.Samples != (Samples{Parts: PartsRGBA, Bits: BitsInt8x4}) {
		t.Errorf("samples = %+v", desc.Texel.Samples)
	}
	if w, h := desc.Size(); w != 3 || h != 2 {
		t.Errorf("Size() = %d, %d, want 3, 2", w, h)
	}

	out, ok := entry.ToImage()
	if !ok {
		t.Fatal("ToImage failed on a host entry")
	}
	back, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("ToImage returned %T, want *image.NRGBA", out)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got, want := back.NRGBAAt(x, y), src.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	// The copy does not alias the pool entry.
	back.Pix[0] = 0xee
	data, _ := entry.Bytes()
	if data[0] == 0xee {
		t.Error("ToImage aliases the pool entry")
	}
}

func TestInsertImageNormalizes(t *testing.T) {
	palette := color.Palette{color.Black, color.White}
	src := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	src.SetColorIndex(1, 1, 1)

	pool := NewPool()
	entry, err := pool.InsertImage(src)
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	desc, ok := entry.Descriptor()
	if !ok {
		t.Fatal("normalized image has no resolvable descriptor")
	}
	if desc.Texel.Samples != (Samples{Parts: PartsRGBA, Bits: BitsInt8x4}) {
		t.Errorf("samples = %+v, want 8-bit RGBA", desc.Texel.Samples)
	}

	out, ok := entry.ToImage()
	if !ok {
		t.Fatal("ToImage failed")
	}
	r, g, b, _ := out.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("pixel (1,1) = %d,%d,%d, want white", r, g, b)
	}
}

func TestInsertImageOffsetBounds(t *testing.T) {
	// Subimages carry non-zero bounds; insertion re-bases them.
	base := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range base.Pix {
		base.Pix[i] = byte(i)
	}
	sub := base.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray)

	pool := NewPool()
	entry, err := pool.InsertImage(sub)
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	if w, h := entry.Layout().Width, entry.Layout().Height; w != 4 || h != 4 {
		t.Fatalf("layout = %dx%d, want 4x4", w, h)
	}
	data, _ := entry.Bytes()
	if data[0] != sub.GrayAt(2, 2).Y {
		t.Errorf("first texel = %d, want %d", data[0], sub.GrayAt(2, 2).Y)
	}
}

func TestDescriptorForImage(t *testing.T) {
	desc, ok := DescriptorForImage(image.NewNRGBA(image.Rect(0, 0, 5, 7)))
	if !ok {
		t.Fatal("DescriptorForImage failed for NRGBA")
	}
	if !desc.IsConsistent() {
		t.Error("derived descriptor is inconsistent")
	}
	if w, h := desc.Size(); w != 5 || h != 7 {
		t.Errorf("Size() = %d, %d, want 5, 7", w, h)
	}

	if _, ok := DescriptorForImage(image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)); ok {
		t.Error("DescriptorForImage resolved a YCbCr image")
	}
}
