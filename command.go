// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import "fmt"

// Register is a reference to one particular value in a command buffer,
// identified by its instruction index. Registers are single-assignment:
// each producing instruction issues a fresh register and no register is
// ever reassigned.
type Register int

// CommandBuffer is one linear sequence of typed image instructions.
//
// The machine model is a single basic block in SSA form where registers
// are strongly typed with their buffer descriptors. A stack machine
// would be a poor fit for image editing: its core assumptions are that
// registers share a size and that copying them is cheap, and neither is
// true for images. A mutable model would complicate type tracking for
// little gain, since without loops there is little reason for
// mutability; a host-side loop around a compiled program can rebind
// pool entries between launches instead.
//
// The strict typing and SSA liveness analysis admit a clean analysis of
// required temporary resources and their reuse.
//
// The zero value is an empty, usable command buffer.
type CommandBuffer struct {
	ops []instruction
}

// instruction is the closed set of command buffer instructions.
type instruction interface {
	instruction()
}

// inputInst declares an externally bound input: i := in().
type inputInst struct {
	desc Descriptor
}

// outputInst records that a register is externally observed: out(src).
// It produces no register.
type outputInst struct {
	src Register
}

// constructInst produces a value from operation parameters alone:
// i := op(), with type(i) = desc.
type constructInst struct {
	desc Descriptor
	op   ConstructOp
}

// unaryInst is i := unary(src), with type(i) = Op[type(src)].
type unaryInst struct {
	src  Register
	op   UnaryOp
	desc Descriptor
}

// binaryInst is i := binary(lhs, rhs), with
// type(i) = Op[type(lhs), type(rhs)].
type binaryInst struct {
	lhs  Register
	rhs  Register
	op   BinaryOp
	desc Descriptor
}

func (inputInst) instruction()     {}
func (outputInst) instruction()    {}
func (constructInst) instruction() {}
func (unaryInst) instruction()     {}
func (binaryInst) instruction()    {}

// ConstructOp parameterizes instructions that create a value out of
// thin air. The set is open for future constructors.
type ConstructOp interface {
	constructOp()
}

// ConstructSolid fills every texel with the same bytes.
type ConstructSolid struct {
	// Data is one texel's worth of bytes.
	Data []byte
}

func (ConstructSolid) constructOp() {}

// UnaryOp parameterizes single-operand image operations.
type UnaryOp interface {
	unaryOp()
}

// UnaryAffine transforms the image by an affine transformation. The
// descriptor is unchanged.
type UnaryAffine struct {
	Affine Affine
}

// UnaryCrop selects a rectangular part of the image. The typed
// descriptor is unchanged; the extent changes at execution time.
type UnaryCrop struct {
	Rect Rectangle
}

// UnaryColorConvert re-encodes the image into a new color. The target
// color must be compatible with the source per the whitepoint rule
// checked at construction.
type UnaryColorConvert struct {
	Color Color
}

// UnaryExtract projects a single channel into a new image.
type UnaryExtract struct {
	Channel ColorChannel
}

func (UnaryAffine) unaryOp()       {}
func (UnaryCrop) unaryOp()         {}
func (UnaryColorConvert) unaryOp() {}
func (UnaryExtract) unaryOp()      {}

// BinaryOp parameterizes two-operand image operations.
type BinaryOp interface {
	binaryOp()
}

// BinaryInscribe pastes the rhs image into the lhs at a placement
// rectangle. Both operands share a texel type.
type BinaryInscribe struct {
	// Placement is normalized at construction.
	Placement Rectangle
}

// BinaryInject replaces one channel of the lhs with the rhs image,
// whose texel must equal the channel projection of the lhs.
type BinaryInject struct {
	Channel ColorChannel
}

func (BinaryInscribe) binaryOp() {}
func (BinaryInject) binaryOp()   {}

// BlendMode names a blend mode for the reserved Blend operation.
type BlendMode uint8

const (
	// BlendAlpha is standard alpha compositing.
	BlendAlpha BlendMode = iota
)

// CommandError reports why an instruction was rejected. The command
// buffer is unchanged when a builder method returns a CommandError.
//
// Two kinds are distinguished: type errors, where operand descriptors,
// color tags or texels are incompatible with the requested operation,
// and generic errors such as structural mismatches or unsupported
// operations. An invalid register reference is a named special case of
// the generic kind.
type CommandError struct {
	typeErr     bool
	badRegister bool
	reason      string
}

func (e *CommandError) Error() string {
	switch {
	case e.badRegister:
		return "pix: " + e.reason
	case e.typeErr:
		return "pix: type error: " + e.reason
	default:
		return "pix: " + e.reason
	}
}

// IsTypeError reports whether the operands were type-incompatible with
// the operation.
func (e *CommandError) IsTypeError() bool {
	return e.typeErr
}

// IsBadRegister reports whether an operand register did not name a
// readable value.
func (e *CommandError) IsBadRegister() bool {
	return e.badRegister
}

func errType(format string, args ...any) *CommandError {
	return &CommandError{typeErr: true, reason: fmt.Sprintf(format, args...)}
}

func errOther(format string, args ...any) *CommandError {
	return &CommandError{reason: fmt.Sprintf(format, args...)}
}

func errBadRegister(reg Register) *CommandError {
	return &CommandError{badRegister: true, reason: fmt.Sprintf("invalid register %d", reg)}
}

// Len returns the number of recorded instructions. Because every
// builder method fails atomically, Len is a reliable upper bound for
// valid register indices at all times.
func (c *CommandBuffer) Len() int {
	return len(c.ops)
}

// Input declares an input.
//
// Inputs must later be bound from the pool during launch.
func (c *CommandBuffer) Input(desc Descriptor) (Register, error) {
	if !desc.IsConsistent() {
		return 0, errType("inconsistent input descriptor")
	}
	return c.push(inputInst{desc: desc}), nil
}

// InputFrom declares a pool image as input.
//
// Returns the new register if the image has a resolvable descriptor,
// otherwise an error.
func (c *CommandBuffer) InputFrom(img PoolImage) (Register, error) {
	desc, ok := img.Descriptor()
	if !ok {
		return 0, errOther("pool image has no resolvable descriptor")
	}
	return c.Input(desc)
}

// Crop selects a rectangular part of an image.
//
// The typed descriptor is unchanged: cropping affects the
// execution-time extent, not the declared element layout.
func (c *CommandBuffer) Crop(src Register, rect Rectangle) (Register, error) {
	desc, err := c.describe(src)
	if err != nil {
		return 0, err
	}
	return c.push(unaryInst{
		src:  src,
		op:   UnaryCrop{Rect: rect},
		desc: desc,
	}), nil
}

// ColorConvert creates an image with a different color encoding.
//
// All colors with the same whitepoint are mapped from their encoded
// form to linear RGB when loading and re-encoded in the target format
// when storing. Colors that are not both XYZ-class, or that differ in
// reference whitepoint, cannot be converted this way and are rejected
// as a type error.
func (c *CommandBuffer) ColorConvert(src Register, texel Texel) (Register, error) {
	descSrc, err := c.describe(src)
	if err != nil {
		return 0, err
	}

	srcColor, dstColor := descSrc.Texel.Color, texel.Color
	if !srcColor.IsXYZClass() || !dstColor.IsXYZClass() {
		return 0, errType("color conversion requires XYZ-class colors")
	}
	if srcColor.Whitepoint != dstColor.Whitepoint {
		return 0, errType("color conversion across reference whitepoints")
	}

	layout, lerr := LayoutForTexel(texel, descSrc.Layout.Width, descSrc.Layout.Height)
	if lerr != nil {
		return 0, errType("target texel has no valid layout at %dx%d", descSrc.Layout.Width, descSrc.Layout.Height)
	}

	return c.push(unaryInst{
		src:  src,
		op:   UnaryColorConvert{Color: texel.Color},
		desc: Descriptor{Layout: layout, Texel: texel},
	}), nil
}

// Inscribe embeds an image as part of a larger one.
//
// The placement rectangle must exactly cover above's full extent and be
// contained in below's extent; both operands must share a texel type.
func (c *CommandBuffer) Inscribe(below Register, rect Rectangle, above Register) (Register, error) {
	descBelow, err := c.describe(below)
	if err != nil {
		return 0, err
	}
	descAbove, err := c.describe(above)
	if err != nil {
		return 0, err
	}

	if descAbove.Texel != descBelow.Texel {
		return 0, errType("inscribe operands have different texel types")
	}
	if RectOf(descAbove.Layout) != rect.Normalize() {
		return 0, errOther("inscribe rectangle does not equal the inscribed extent")
	}
	if !RectOf(descBelow.Layout).Contains(rect.Normalize()) {
		return 0, errOther("inscribe rectangle exceeds the target extent")
	}

	return c.push(binaryInst{
		lhs:  below,
		rhs:  above,
		op:   BinaryInscribe{Placement: rect.Normalize()},
		desc: descBelow,
	}), nil
}

// Extract projects a single channel of an image into a new view.
func (c *CommandBuffer) Extract(src Register, channel ColorChannel) (Register, error) {
	desc, err := c.describe(src)
	if err != nil {
		return 0, err
	}
	texel, ok := desc.ChannelTexel(channel)
	if !ok {
		return 0, errOther("channel %d is not extractable from the source texel", channel)
	}
	return c.push(unaryInst{
		src:  src,
		op:   UnaryExtract{Channel: channel},
		desc: Descriptor{Layout: desc.Layout, Texel: texel},
	}), nil
}

// Inject overwrites one channel of an image with overlaid data.
func (c *CommandBuffer) Inject(below Register, channel ColorChannel, above Register) (Register, error) {
	descBelow, err := c.describe(below)
	if err != nil {
		return 0, err
	}
	expected, ok := descBelow.ChannelTexel(channel)
	if !ok {
		return 0, errOther("channel %d is not extractable from the target texel", channel)
	}
	descAbove, err := c.describe(above)
	if err != nil {
		return 0, err
	}
	if expected != descAbove.Texel {
		return 0, errType("injected texel does not match the channel projection")
	}
	return c.push(binaryInst{
		lhs:  below,
		rhs:  above,
		op:   BinaryInject{Channel: channel},
		desc: descBelow,
	}), nil
}

// Blend overlays an image onto a larger one with blending.
//
// Reserved: no blend mode is implemented yet and the call always fails
// with a generic error, leaving the buffer unchanged.
func (c *CommandBuffer) Blend(below Register, rect Rectangle, above Register, blend BlendMode) (Register, error) {
	_, _, _, _ = below, rect, above, blend
	return 0, errOther("blend modes are not supported")
}

// Solid constructs a solid color image from a descriptor and the bytes
// of a single texel.
func (c *CommandBuffer) Solid(desc Descriptor, data []byte) (Register, error) {
	if len(data) != int(desc.Layout.BytesPerTexel) {
		return 0, errType("solid data is %d bytes, texel takes %d", len(data), desc.Layout.BytesPerTexel)
	}
	solid := ConstructSolid{Data: append([]byte(nil), data...)}
	return c.push(constructInst{desc: desc, op: solid}), nil
}

// Affine applies an affine transformation to the image.
func (c *CommandBuffer) Affine(src Register, affine Affine) (Register, error) {
	desc, err := c.describe(src)
	if err != nil {
		return 0, err
	}
	return c.push(unaryInst{
		src:  src,
		op:   UnaryAffine{Affine: affine},
		desc: desc,
	}), nil
}

// Output declares an output and returns its finalized descriptor.
//
// Outputs must later be bound from the pool during launch. Output
// records the observation without issuing a new register.
func (c *CommandBuffer) Output(src Register) (Descriptor, error) {
	desc, err := c.describe(src)
	if err != nil {
		return Descriptor{}, err
	}
	c.push(outputInst{src: src})
	return desc, nil
}

// describe resolves the descriptor of a register. Out-of-range indices
// and outputs are not readable values.
func (c *CommandBuffer) describe(reg Register) (Descriptor, error) {
	if reg < 0 || int(reg) >= len(c.ops) {
		return Descriptor{}, errBadRegister(reg)
	}
	switch op := c.ops[reg].(type) {
	case inputInst:
		return op.desc, nil
	case constructInst:
		return op.desc, nil
	case unaryInst:
		return op.desc, nil
	case binaryInst:
		return op.desc, nil
	default: // outputInst: outputs are sinks, not sources.
		return Descriptor{}, errBadRegister(reg)
	}
}

func (c *CommandBuffer) push(op instruction) Register {
	reg := Register(len(c.ops))
	c.ops = append(c.ops, op)
	return reg
}
