// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"fmt"
	"iter"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pix/internal/arena"
)

// Pool holds a number of image buffers, their descriptors and metadata,
// together with the devices that may own some of them.
//
// Buffers can be owned in different manners: host allocated, resident
// in a device buffer or texture, or late-bound placeholders whose data
// the caller supplies at launch. Keys are generational: a removed
// entry's key reads as gone forever and never aliases a later entry.
//
// Pool is not safe for concurrent use.
type Pool struct {
	items   arena.Arena[imageEntry]
	devices arena.Arena[GPU]
}

// PoolKey names an image entry in a pool. The zero PoolKey is null: it
// is guaranteed to never name a live entry.
type PoolKey struct {
	key arena.Key
}

// IsNull reports whether the key is the null key.
func (k PoolKey) IsNull() bool {
	return k.key.IsNull()
}

// GPUKey names a registered device in a pool. The zero GPUKey is null.
type GPUKey struct {
	key arena.Key
}

// IsNull reports whether the key is the null key.
func (k GPUKey) IsNull() bool {
	return k.key.IsNull()
}

// imageEntry is one pooled image.
type imageEntry struct {
	meta  ImageMeta
	data  ImageData
	texel Texel
}

// ImageMeta is metadata distinct from layout questions.
type ImageMeta struct {
	// NoRead marks contents that need not be preserved. Such an entry
	// may be used as a scratch buffer for other operations,
	// overwriting its contents at will.
	NoRead bool
	// NoWrite marks a logically immutable entry, which a device may
	// allocate or cache differently.
	NoWrite bool
}

// ImageData is the backing store of a pool entry: exactly one of a
// host buffer, a device buffer, a device texture, or a late-bound
// placeholder. The layout recorded with device-backed data always
// matches the layout implied by the entry's texel description.
type ImageData interface {
	// Layout returns the byte layout of the stored data.
	Layout() BufferLayout

	imageData()
}

// HostData is image data in host memory.
type HostData struct {
	Buffer *ImageBuffer
}

// GPUBufferData is image data in a generic device buffer, associated
// with one of the pool's registered devices.
type GPUBufferData struct {
	Buffer     hal.Buffer
	ByteLayout BufferLayout
	Device     GPUKey
}

// GPUTextureData is image data in a texture on a device, associated
// with one of the pool's registered devices.
type GPUTextureData struct {
	Texture    hal.Texture
	ByteLayout BufferLayout
	Device     GPUKey
}

// LateBoundData is a placeholder: the data will be provided by the
// caller at launch. Such an entry can only be used in operations that
// do not keep a reference to the bytes.
type LateBoundData struct {
	ByteLayout BufferLayout
}

func (d HostData) Layout() BufferLayout       { return d.Buffer.Layout() }
func (d GPUBufferData) Layout() BufferLayout  { return d.ByteLayout }
func (d GPUTextureData) Layout() BufferLayout { return d.ByteLayout }
func (d LateBoundData) Layout() BufferLayout  { return d.ByteLayout }

func (HostData) imageData()       {}
func (GPUBufferData) imageData()  {}
func (GPUTextureData) imageData() {}
func (LateBoundData) imageData()  {}

// dataBytes is the single dispatch point for host visibility of a
// backing store. Device-resident and late-bound data have no
// host-accessible bytes.
func dataBytes(d ImageData) ([]byte, bool) {
	if host, ok := d.(HostData); ok {
		return host.Buffer.Bytes(), true
	}
	return nil, false
}

// PoolImage is a read-only view of an image inside the pool. A view
// stays valid across later pool mutations; it resolves its entry
// through the pool on every access.
type PoolImage struct {
	pool *Pool
	key  arena.Key
}

// PoolImageMut is an exclusive handle on an image inside the pool. It
// is the only path to the entry's storage while it is live; do not
// hold two handles to one entry.
type PoolImageMut struct {
	pool *Pool
	key  arena.Key
}

// entry resolves the handle. Handles are only issued for live entries
// and the pool has no removal, so resolution cannot fail for a handle
// obtained from pool methods.
func (v PoolImage) entry() *imageEntry {
	return v.pool.items.Get(v.key)
}

func (m PoolImageMut) entry() *imageEntry {
	return m.pool.items.Get(m.key)
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Entry returns an exclusive handle on an image in the pool, or false
// if the key does not name a live entry.
func (p *Pool) Entry(key PoolKey) (PoolImageMut, bool) {
	if p.items.Get(key.key) == nil {
		return PoolImageMut{}, false
	}
	return PoolImageMut{pool: p, key: key.key}, true
}

// Insert gifts the pool an image allocated on the host. The texel
// describes how the buffer's bytes are interpreted.
func (p *Pool) Insert(buffer *ImageBuffer, texel Texel) PoolImageMut {
	return p.insertData(HostData{Buffer: buffer}, texel)
}

// AllocateLike creates a new host-backed entry with the same layout and
// texel as an existing one, copying the bytes when the source is
// host-accessible. Otherwise the new entry has undefined initial
// contents.
//
// AllocateLike panics when the key does not name a live entry.
func (p *Pool) AllocateLike(key PoolKey) PoolImageMut {
	entry, ok := p.Entry(key)
	if !ok {
		panic(fmt.Sprintf("pix: AllocateLike with dead pool key %+v", key))
	}
	buffer := NewImageBuffer(entry.Layout())
	texel := entry.Texel()
	if data, ok := entry.Bytes(); ok {
		copy(buffer.Bytes(), data)
	}
	return p.insertData(HostData{Buffer: buffer}, texel)
}

// Declare creates a late-bound entry for an image buffer that the
// caller will provide at launch.
//
// Declare panics when the descriptor is inconsistent: passing one is a
// programmer error, not a runtime contingency.
func (p *Pool) Declare(desc Descriptor) PoolImageMut {
	if !desc.IsConsistent() {
		panic(fmt.Sprintf("pix: Declare with inconsistent descriptor %+v", desc))
	}
	return p.insertData(LateBoundData{ByteLayout: desc.Layout}, desc.Texel)
}

// Iter iterates over all entries in the pool as read-only views.
func (p *Pool) Iter() iter.Seq[PoolImage] {
	return func(yield func(PoolImage) bool) {
		for key := range p.items.All() {
			if !yield(PoolImage{pool: p, key: key}) {
				return
			}
		}
	}
}

// IterMut iterates over all entries in the pool as exclusive handles.
func (p *Pool) IterMut() iter.Seq[PoolImageMut] {
	return func(yield func(PoolImageMut) bool) {
		for key := range p.items.All() {
			if !yield(PoolImageMut{pool: p, key: key}) {
				return
			}
		}
	}
}

func (p *Pool) insertData(data ImageData, texel Texel) PoolImageMut {
	key := p.items.Insert(imageEntry{data: data, texel: texel})
	return PoolImageMut{pool: p, key: key}
}

// Key returns the pool key of the viewed image.
func (v PoolImage) Key() PoolKey {
	return PoolKey{key: v.key}
}

// Layout returns the buffer layout describing the byte occupancy.
func (v PoolImage) Layout() BufferLayout {
	return v.entry().data.Layout()
}

// Descriptor returns the full descriptor for this image. It reports
// false when no consistent descriptor is resolvable, i.e. when the
// configured texel does not describe the stored layout.
func (v PoolImage) Descriptor() (Descriptor, bool) {
	desc := Descriptor{Layout: v.Layout(), Texel: v.entry().texel}
	return desc, desc.IsConsistent()
}

// Texel returns the texel description of the entry.
func (v PoolImage) Texel() Texel {
	return v.entry().texel
}

// Meta returns the metadata of the entry.
func (v PoolImage) Meta() ImageMeta {
	return v.entry().meta
}

// Bytes views the buffer as bytes. It reports false unless the image is
// a host-allocated buffer. The bytes must not be modified through a
// read-only view.
func (v PoolImage) Bytes() ([]byte, bool) {
	return dataBytes(v.entry().data)
}

// View converts an exclusive handle into a read-only view.
func (m PoolImageMut) View() PoolImage {
	return PoolImage(m)
}

// Key returns the pool key of the image. Use it to access the same
// image again.
func (m PoolImageMut) Key() PoolKey {
	return PoolKey{key: m.key}
}

// Layout returns the buffer layout describing the byte occupancy.
func (m PoolImageMut) Layout() BufferLayout {
	return m.entry().data.Layout()
}

// Descriptor returns the full descriptor for this image. It reports
// false when no consistent descriptor is resolvable.
func (m PoolImageMut) Descriptor() (Descriptor, bool) {
	return m.View().Descriptor()
}

// Texel returns the texel description of the entry.
func (m PoolImageMut) Texel() Texel {
	return m.entry().texel
}

// Bytes views the buffer as bytes. It reports false unless the image is
// a host-allocated buffer.
func (m PoolImageMut) Bytes() ([]byte, bool) {
	return dataBytes(m.entry().data)
}

// SetBytes copies data into the host buffer. It reports false, and
// copies nothing, when the image is not host-accessible or the data
// does not cover the layout exactly.
func (m PoolImageMut) SetBytes(data []byte) bool {
	dst, ok := dataBytes(m.entry().data)
	if !ok || len(data) != len(dst) {
		return false
	}
	copy(dst, data)
	return true
}

// Meta returns the metadata of the entry.
func (m PoolImageMut) Meta() ImageMeta {
	return m.entry().meta
}

// SetNoRead marks whether the entry's contents are disposable. A
// disposable entry may be reused as scratch storage, and Trade will
// move it instead of copying.
func (m PoolImageMut) SetNoRead(noRead bool) {
	m.entry().meta.NoRead = noRead
}

// SetNoWrite marks the entry as logically immutable.
func (m PoolImageMut) SetNoWrite(noWrite bool) {
	m.entry().meta.NoWrite = noWrite
}

// SetColor configures the color of this image without changing any
// data.
//
// SetColor panics when the color cannot carry the entry's sample parts:
// that is a programmer error the type system cannot express.
func (m PoolImageMut) SetColor(color Color) {
	entry := m.entry()
	if !color.Compatible(entry.texel.Samples.Parts) {
		panic(fmt.Sprintf("pix: color %+v cannot carry sample parts %d", color, entry.texel.Samples.Parts))
	}
	entry.texel.Color = color
}

// HostAllocate replaces the backing store with a freshly allocated host
// buffer of the same layout and returns the previous store.
func (m PoolImageMut) HostAllocate() ImageData {
	entry := m.entry()
	old := entry.data
	entry.data = HostData{Buffer: NewImageBuffer(old.Layout())}
	return old
}

// HostCopy returns a host-allocated copy of this image's bytes. It
// reports false when the image is not host-accessible.
func (m PoolImageMut) HostCopy() (*ImageBuffer, bool) {
	data, ok := m.Bytes()
	if !ok {
		return nil, false
	}
	buffer := NewImageBuffer(m.Layout())
	copy(buffer.Bytes(), data)
	return buffer, true
}

// Replace substitutes the backing store with caller-supplied data and
// returns the previous store.
//
// Replace panics when the layouts differ.
func (m PoolImageMut) Replace(data ImageData) ImageData {
	entry := m.entry()
	if entry.data.Layout() != data.Layout() {
		panic(fmt.Sprintf("pix: Replace layout mismatch: %+v vs %+v", entry.data.Layout(), data.Layout()))
	}
	old := entry.data
	entry.data = data
	return old
}

// Swap exchanges the backing store with caller-supplied data in place.
//
// Swap panics when the layouts differ.
func (m PoolImageMut) Swap(data *ImageData) {
	entry := m.entry()
	if entry.data.Layout() != (*data).Layout() {
		panic(fmt.Sprintf("pix: Swap layout mismatch: %+v vs %+v", entry.data.Layout(), (*data).Layout()))
	}
	entry.data, *data = *data, entry.data
}

// Trade is the ownership-transfer policy used when binding a value in
// or out of the pool. If the entry's contents are disposable (NoRead)
// the stores are swapped, a zero-copy transfer. Otherwise, if the
// current data is host-accessible, a copy is installed into data and
// the entry keeps its bytes. Trade reports false, and changes nothing,
// when neither applies: device-resident data that must be preserved is
// never silently lost.
func (m PoolImageMut) Trade(data *ImageData) bool {
	if m.entry().meta.NoRead {
		m.Swap(data)
		return true
	}
	if buffer, ok := m.HostCopy(); ok {
		*data = HostData{Buffer: buffer}
		return true
	}
	Logger().Warn("pix: trade refused, entry is device-resident and must be preserved",
		"layout", m.Layout())
	return false
}
