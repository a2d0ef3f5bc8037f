// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import (
	"fmt"
	"iter"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GPU is a device/queue pair registered with a pool. Device-backed
// image data refers to the GPU that owns it by key.
type GPU struct {
	Device hal.Device
	Queue  hal.Queue

	// Name and DeviceType describe the adapter the device was opened
	// on. They are informational.
	Name       string
	DeviceType gputypes.DeviceType
}

// DeviceOptions configures opening a device on an adapter. A nil
// options value requests no optional features and the default limits.
type DeviceOptions struct {
	Features gputypes.Features
	Limits   gputypes.Limits
}

// Capabilities describes what a caller requires from a device when
// selecting one from the pool.
type Capabilities struct {
	Features gputypes.Features
}

// RequestDevice opens a device on the given adapter and registers it
// with the pool. The call blocks until the driver has produced the
// device; there is no cancellation.
func (p *Pool) RequestDevice(adapter *hal.ExposedAdapter, opts *DeviceOptions) (GPUKey, error) {
	features := gputypes.Features(0)
	limits := gputypes.DefaultLimits()
	if opts != nil {
		features = opts.Features
		limits = opts.Limits
	}
	open, err := adapter.Adapter.Open(features, limits)
	if err != nil {
		return GPUKey{}, fmt.Errorf("pix: open device on adapter %q: %w", adapter.Info.Name, err)
	}
	gpu := GPU{
		Device:     open.Device,
		Queue:      open.Queue,
		Name:       adapter.Info.Name,
		DeviceType: adapter.Info.DeviceType,
	}
	key := p.ReinsertDevice(gpu)
	Logger().Info("pix: device registered", "adapter", gpu.Name, "type", gpu.DeviceType)
	return key, nil
}

// halProvider is the subset of device providers that expose their
// underlying hal objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// AttachDevice registers an externally created device with the pool.
// The provider must expose its hal device and queue; providers from
// other backends are rejected.
func (p *Pool) AttachDevice(provider gpucontext.DeviceProvider) (GPUKey, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return GPUKey{}, fmt.Errorf("pix: device provider %T does not expose hal objects", provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return GPUKey{}, fmt.Errorf("pix: device provider %T holds no hal device", provider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return GPUKey{}, fmt.Errorf("pix: device provider %T holds no hal queue", provider)
	}
	key := p.ReinsertDevice(GPU{Device: device, Queue: queue})
	Logger().Info("pix: external device attached", "provider", fmt.Sprintf("%T", provider))
	return key, nil
}

// SelectDevice removes a device from the pool for exclusive use by an
// execution, returning it together with its key so it can be
// reinserted afterwards. It reports false when no device is
// registered.
//
// TODO: match the device against the requested capabilities instead of
// taking the first one.
func (p *Pool) SelectDevice(caps *Capabilities) (GPUKey, GPU, bool) {
	_ = caps
	for key, gpu := range p.devices.All() {
		taken := *gpu
		p.devices.Remove(key)
		return GPUKey{key: key}, taken, true
	}
	return GPUKey{}, GPU{}, false
}

// ReinsertDevice returns a previously selected device to the pool, or
// registers a device that was opened without the pool's involvement.
// The device is handed out under a fresh key.
func (p *Pool) ReinsertDevice(gpu GPU) GPUKey {
	return GPUKey{key: p.devices.Insert(gpu)}
}

// IterDevices iterates over the devices currently registered with the
// pool.
func (p *Pool) IterDevices() iter.Seq[GPU] {
	return func(yield func(GPU) bool) {
		for _, gpu := range p.devices.All() {
			if !yield(*gpu) {
				return
			}
		}
	}
}
