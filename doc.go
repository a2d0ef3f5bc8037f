// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pix provides a typed command buffer and resource pool for
// device-agnostic image editing.
//
// # Overview
//
// pix is the front end of an image-editing pipeline. A caller records a
// sequence of image operations (crop, color conversion, compositing,
// channel extraction and injection, affine transforms) into a
// CommandBuffer. Every instruction is type-checked against the buffer
// descriptors of its operands before it is recorded, so a finished
// command buffer is type-correct by construction.
//
// Compile lowers the command buffer into a Program: a resource-scheduled
// instruction sequence over abstract resource slots, with explicit
// allocate and discard points derived from a register liveness analysis.
// Registers whose lifetimes do not overlap share slots, so expensive
// image buffers are reused instead of reallocated.
//
// The Pool owns the pixel data behind the program at run time. Entries
// can live in host memory, in a device buffer or texture on a registered
// GPU, or as a late-bound placeholder whose bytes the caller supplies at
// launch. Explicit transfer primitives (Replace, Swap, Trade) govern when
// data is moved, copied, or destructively reused.
//
// # Quick Start
//
//	var cmd pix.CommandBuffer
//
//	src, _ := cmd.Input(desc)
//	crop, _ := cmd.Crop(src, pix.Rect(64, 64))
//	cmd.Output(crop)
//
//	prog, err := cmd.Compile()
//
// The caller then binds concrete Pool entries to the program's inputs
// and outputs and hands both to an execution engine. pix itself does not
// execute programs, compile shaders, or decode image files; it bridges
// to the standard image package for host-side data only.
//
// # Machine Model
//
// A command buffer is a single basic block in single-assignment form.
// Registers are never reassigned and an instruction can only reference
// registers produced before it. There is no branching or looping; wrap
// the compiled program in a host-side loop and rebind pool entries
// between launches instead.
//
// # Concurrency
//
// CommandBuffer, Program and Pool are single-threaded values with no
// internal locking. Use one per goroutine or synchronize externally.
package pix
