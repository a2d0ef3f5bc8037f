// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// TexelForImage returns the texel description matching a standard
// library image type. It reports false for image types whose in-memory
// representation has no direct sample layout, such as paletted or
// YCbCr images; those must be normalized before insertion.
func TexelForImage(img image.Image) (Texel, bool) {
	samples, ok := samplesForImage(img)
	if !ok {
		return Texel{}, false
	}
	return Texel{Block: BlockPixel, Samples: samples, Color: ColorSRGB}, true
}

// DescriptorForImage returns the descriptor under which a standard
// library image would be inserted into a pool. It reports false when
// the image type has no direct sample layout or its dimensions do not
// fit the layout constraints.
func DescriptorForImage(img image.Image) (Descriptor, bool) {
	texel, ok := TexelForImage(img)
	if !ok {
		return Descriptor{}, false
	}
	bounds := img.Bounds()
	layout, err := LayoutForTexel(texel, uint32(bounds.Dx()), uint32(bounds.Dy()))
	if err != nil {
		return Descriptor{}, false
	}
	return Descriptor{Layout: layout, Texel: texel}, true
}

func samplesForImage(img image.Image) (Samples, bool) {
	switch img.(type) {
	case *image.Gray:
		return Samples{Parts: PartsLuma, Bits: BitsInt8}, true
	case *image.Gray16:
		return Samples{Parts: PartsLuma, Bits: BitsInt16}, true
	case *image.Alpha:
		return Samples{Parts: PartsA, Bits: BitsInt8}, true
	case *image.NRGBA, *image.RGBA:
		return Samples{Parts: PartsRGBA, Bits: BitsInt8x4}, true
	case *image.NRGBA64, *image.RGBA64:
		return Samples{Parts: PartsRGBA, Bits: BitsInt16x4}, true
	default:
		return Samples{}, false
	}
}

// imagePix returns the raw sample storage and row stride of a
// supported standard library image.
func imagePix(img image.Image) ([]uint8, int, bool) {
	switch img := img.(type) {
	case *image.Gray:
		return img.Pix, img.Stride, true
	case *image.Gray16:
		return img.Pix, img.Stride, true
	case *image.Alpha:
		return img.Pix, img.Stride, true
	case *image.NRGBA:
		return img.Pix, img.Stride, true
	case *image.RGBA:
		return img.Pix, img.Stride, true
	case *image.NRGBA64:
		return img.Pix, img.Stride, true
	case *image.RGBA64:
		return img.Pix, img.Stride, true
	default:
		return nil, 0, false
	}
}

// InsertImage gifts the pool an image decoded with the standard
// library, interpreting its samples as sRGB. Image types without a
// direct sample layout are converted to NRGBA first.
func (p *Pool) InsertImage(img image.Image) (PoolImageMut, error) {
	texel, ok := TexelForImage(img)
	if !ok {
		// Paletted, YCbCr and friends: normalize to 8-bit RGBA.
		bounds := img.Bounds()
		converted := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(converted, converted.Bounds(), img, bounds.Min, draw.Src)
		img = converted
		texel = Texel{
			Block:   BlockPixel,
			Samples: Samples{Parts: PartsRGBA, Bits: BitsInt8x4},
			Color:   ColorSRGB,
		}
	}
	bounds := img.Bounds()
	layout, err := LayoutForTexel(texel, uint32(bounds.Dx()), uint32(bounds.Dy()))
	if err != nil {
		return PoolImageMut{}, fmt.Errorf("pix: image of size %dx%d has no valid layout: %w",
			bounds.Dx(), bounds.Dy(), err)
	}
	buffer := NewImageBuffer(layout)
	pix, stride, _ := imagePix(img)
	copyPixels(buffer, pix, stride)
	return p.Insert(buffer, texel), nil
}

// copyPixels copies row-padded sample storage into a tightly described
// buffer, one row at a time.
func copyPixels(buffer *ImageBuffer, pix []uint8, stride int) {
	layout := buffer.Layout()
	dst := buffer.Bytes()
	rowBytes := int(layout.Width) * int(layout.BytesPerTexel)
	for y := 0; y < int(layout.Height); y++ {
		copy(dst[y*int(layout.BytesPerRow):][:rowBytes], pix[y*stride:][:rowBytes])
	}
}

// ToImage converts the image into a standard library image, copying the
// bytes. It reports false when the image is not host-accessible or its
// sample layout has no standard library equivalent.
func (v PoolImage) ToImage() (image.Image, bool) {
	data, ok := v.Bytes()
	if !ok {
		return nil, false
	}
	layout := v.Layout()
	texel := v.Texel()
	if texel.Block != BlockPixel {
		return nil, false
	}
	rect := image.Rect(0, 0, int(layout.Width), int(layout.Height))
	pix := make([]uint8, len(data))
	copy(pix, data)
	stride := int(layout.BytesPerRow)
	switch texel.Samples {
	case Samples{Parts: PartsLuma, Bits: BitsInt8}:
		return &image.Gray{Pix: pix, Stride: stride, Rect: rect}, true
	case Samples{Parts: PartsLuma, Bits: BitsInt16}:
		return &image.Gray16{Pix: pix, Stride: stride, Rect: rect}, true
	case Samples{Parts: PartsA, Bits: BitsInt8}:
		return &image.Alpha{Pix: pix, Stride: stride, Rect: rect}, true
	case Samples{Parts: PartsRGBA, Bits: BitsInt8x4}:
		return &image.NRGBA{Pix: pix, Stride: stride, Rect: rect}, true
	case Samples{Parts: PartsRGBA, Bits: BitsInt16x4}:
		return &image.NRGBA64{Pix: pix, Stride: stride, Rect: rect}, true
	default:
		return nil, false
	}
}

// ToImage converts the image into a standard library image, copying the
// bytes.
func (m PoolImageMut) ToImage() (image.Image, bool) {
	return m.View().ToImage()
}
