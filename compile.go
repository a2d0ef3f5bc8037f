// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

// Resource identifies one resource slot of a lowered program, by index.
// Unlike registers, resource slots are not single-assignment: the
// compiler reuses a slot for a later register once its previous owner's
// liveness interval has ended and the descriptors agree.
type Resource int

// High is a high-level, device independent translation of the typed
// instructions. The main difference to the typed form is that it is no
// longer in SSA form: it references resource slots, which may be
// reused, and it carries explicit allocate and discard points emitted
// by the compiler rather than the caller.
type High interface {
	highOp()
}

// HighInput binds resource slot Dst to the input with the given
// descriptor. Input slots are caller-bound; no allocation is emitted
// for them.
type HighInput struct {
	Dst  Resource
	Desc Descriptor
}

// HighOutput designates the slot as output number Index, counted in
// sequence of outputs. Output slots stay live for the caller and are
// never discarded or reused afterwards.
type HighOutput struct {
	Src   Resource
	Index int
}

// HighAllocate instructs the machine to allocate the slot now.
type HighAllocate struct {
	Dst  Resource
	Desc Descriptor
}

// HighDiscard marks a slot as unneeded from this point on.
type HighDiscard struct {
	Src Resource
}

// HighConstruct fills Dst from operation parameters alone.
type HighConstruct struct {
	Dst  Resource
	Op   ConstructOp
	Desc Descriptor
}

// HighUnary computes Dst from Src.
type HighUnary struct {
	Src Resource
	Dst Resource
	Op  UnaryOp
}

// HighBinary computes Dst from Lhs and Rhs.
type HighBinary struct {
	Lhs Resource
	Rhs Resource
	Dst Resource
	Op  BinaryOp
}

func (HighInput) highOp()     {}
func (HighOutput) highOp()    {}
func (HighAllocate) highOp()  {}
func (HighDiscard) highOp()   {}
func (HighConstruct) highOp() {}
func (HighUnary) highOp()     {}
func (HighBinary) highOp()    {}

// LiveInterval is the span of instruction indices between a register's
// first and last read. A register that is never read has an empty
// interval with FirstUse > LastUse.
type LiveInterval struct {
	FirstUse int
	LastUse  int
}

// Empty reports whether the register is never read.
func (l LiveInterval) Empty() bool {
	return l.FirstUse > l.LastUse
}

// Program is a compiled, resource-scheduled instruction sequence ready
// to be bound against a pool and handed to an execution engine.
// Recompiling the same command buffer always yields the same program.
type Program struct {
	// Ops is the lowered instruction sequence.
	Ops []High

	intervals []LiveInterval
	resources []Descriptor
}

// Liveness returns the liveness interval of a register of the source
// command buffer. It returns false for indices that never named a
// register.
func (p *Program) Liveness(reg Register) (LiveInterval, bool) {
	if reg < 0 || int(reg) >= len(p.intervals) {
		return LiveInterval{}, false
	}
	return p.intervals[reg], true
}

// Resources returns the number of distinct resource slots the program
// uses.
func (p *Program) Resources() int {
	return len(p.resources)
}

// ResourceDescriptor returns the descriptor a slot must be allocated
// with. It returns false for out-of-range slots.
func (p *Program) ResourceDescriptor(r Resource) (Descriptor, bool) {
	if r < 0 || int(r) >= len(p.resources) {
		return Descriptor{}, false
	}
	return p.resources[r], true
}

// Compile lowers the command buffer into a resource-scheduled program.
//
// Compilation runs two deterministic passes. A reverse scan computes
// for every register the smallest index at which it is first read and
// the largest index at which it is last read. A forward pass then
// assigns each register a resource slot, reusing a slot whose previous
// owner's interval has ended when the descriptors agree, and brackets
// each slot's required lifetime with allocate and discard instructions.
// Image buffers are expensive; the interval analysis is what makes this
// reuse safe.
func (c *CommandBuffer) Compile() (*Program, error) {
	steps := len(c.ops)

	lastUse := make([]int, steps)
	firstUse := make([]int, steps)
	for i := range firstUse {
		firstUse[i] = steps
	}

	// Liveness. Inputs and constructs read nothing; everything else
	// extends the interval of each register it reads, once per read.
	for idx := steps - 1; idx >= 0; idx-- {
		extend := func(reg Register) {
			lastUse[reg] = max(lastUse[reg], idx)
			firstUse[reg] = min(firstUse[reg], idx)
		}
		switch op := c.ops[idx].(type) {
		case outputInst:
			extend(op.src)
		case unaryInst:
			extend(op.src)
		case binaryInst:
			extend(op.rhs)
			extend(op.lhs)
		}
	}

	lower := lowering{
		lastUse: lastUse,
		regSlot: make([]Resource, steps),
	}
	for i := range lower.regSlot {
		lower.regSlot[i] = -1
	}

	for idx, op := range c.ops {
		switch op := op.(type) {
		case inputInst:
			slot := lower.freshSlot(op.desc)
			lower.regSlot[idx] = slot
			lower.emit(HighInput{Dst: slot, Desc: op.desc})
		case constructInst:
			slot := lower.acquire(op.desc)
			lower.regSlot[idx] = slot
			lower.emit(HighConstruct{Dst: slot, Op: op.op, Desc: op.desc})
			lower.releaseDead(Register(idx), firstUse, lastUse)
		case unaryInst:
			src := lower.regSlot[op.src]
			dst := lower.acquire(op.desc)
			lower.regSlot[idx] = dst
			lower.emit(HighUnary{Src: src, Dst: dst, Op: op.op})
			lower.release(op.src, idx)
			lower.releaseDead(Register(idx), firstUse, lastUse)
		case binaryInst:
			lhs := lower.regSlot[op.lhs]
			rhs := lower.regSlot[op.rhs]
			dst := lower.acquire(op.desc)
			lower.regSlot[idx] = dst
			lower.emit(HighBinary{Lhs: lhs, Rhs: rhs, Dst: dst, Op: op.op})
			lower.release(op.lhs, idx)
			if op.rhs != op.lhs {
				lower.release(op.rhs, idx)
			}
			lower.releaseDead(Register(idx), firstUse, lastUse)
		case outputInst:
			slot := lower.regSlot[op.src]
			lower.pin(slot)
			lower.emit(HighOutput{Src: slot, Index: lower.outputs})
			lower.outputs++
		}
	}

	intervals := make([]LiveInterval, steps)
	for i := range intervals {
		intervals[i] = LiveInterval{FirstUse: firstUse[i], LastUse: lastUse[i]}
	}

	prog := &Program{
		Ops:       lower.compact(),
		intervals: intervals,
		resources: lower.slotDesc,
	}

	Logger().Debug("pix: compiled command buffer",
		"instructions", steps,
		"lowered", len(prog.Ops),
		"resources", len(prog.resources),
		"outputs", lower.outputs)

	return prog, nil
}

// lowering is the forward-pass state of Compile.
type lowering struct {
	ops      []High
	lastUse  []int
	regSlot  []Resource
	slotDesc []Descriptor

	// free lists slots whose owner's interval has ended, available for
	// registers with an equal descriptor.
	free []Resource

	// pending maps a freed slot to the index of its tentative discard
	// in ops. Reusing the slot retracts the discard instead of
	// reallocating.
	pending map[Resource]int

	pinned  map[Resource]bool
	outputs int
}

func (l *lowering) emit(op High) {
	l.ops = append(l.ops, op)
}

// freshSlot creates a new slot without an allocation point. Used for
// inputs, whose storage the caller binds.
func (l *lowering) freshSlot(desc Descriptor) Resource {
	slot := Resource(len(l.slotDesc))
	l.slotDesc = append(l.slotDesc, desc)
	return slot
}

// acquire returns a slot for a newly produced register: a reusable
// freed slot with an equal descriptor if one exists, otherwise a fresh
// slot with an allocation point just before it is first needed.
func (l *lowering) acquire(desc Descriptor) Resource {
	for i, slot := range l.free {
		if l.slotDesc[slot] != desc {
			continue
		}
		l.free = append(l.free[:i], l.free[i+1:]...)
		if at, ok := l.pending[slot]; ok {
			l.ops[at] = nil
			delete(l.pending, slot)
		}
		return slot
	}
	slot := l.freshSlot(desc)
	l.emit(HighAllocate{Dst: slot, Desc: desc})
	return slot
}

// release frees the slot of a read register when this read is its last.
func (l *lowering) release(reg Register, idx int) {
	if l.lastUse[reg] != idx {
		return
	}
	l.freeSlot(l.regSlot[reg])
}

// releaseDead frees the slot of a register that is never read, right
// after its producing instruction.
func (l *lowering) releaseDead(reg Register, firstUse, lastUse []int) {
	if firstUse[reg] <= lastUse[reg] {
		return
	}
	l.freeSlot(l.regSlot[reg])
}

func (l *lowering) freeSlot(slot Resource) {
	if slot < 0 || l.pinned[slot] {
		return
	}
	l.emit(HighDiscard{Src: slot})
	if l.pending == nil {
		l.pending = make(map[Resource]int)
	}
	l.pending[slot] = len(l.ops) - 1
	l.free = append(l.free, slot)
}

// pin marks an output slot: it is never discarded or reused afterwards.
// A slot can only be freed at its owner's last use, and an observed
// register's last use is never before its output, so pinning always
// happens while the slot is still live.
func (l *lowering) pin(slot Resource) {
	if l.pinned == nil {
		l.pinned = make(map[Resource]bool)
	}
	l.pinned[slot] = true
}

// compact strips retracted discards.
func (l *lowering) compact() []High {
	out := l.ops[:0]
	for _, op := range l.ops {
		if op != nil {
			out = append(out, op)
		}
	}
	return out
}
