package metadata

import (
	"github.com/ilweave/hashcache/errors"
)

// Region is an exception-handler region. Boundaries are instruction indices;
// Start/End and HandlerStart/HandlerEnd are half-open ranges [start, end).
type Region struct {
	Start        int
	End          int
	HandlerStart int
	HandlerEnd   int
}

// Body is a method body: an ordered instruction arena plus local-variable
// declarations and exception-handler regions. All intra-body references
// (branch targets, region boundaries) are indices into Instrs.
type Body struct {
	Instrs  []Instruction
	Locals  []Local
	Regions []Region
}

// Clone returns a deep, independent copy of the body. Instructions, locals,
// and regions are duplicated; Field and Method operands keep pointing at the
// same members, since those are not renamed by cloning. Branch targets and
// region boundaries are positions, so they resolve within the copy by
// construction.
func (b *Body) Clone() *Body {
	c := &Body{
		Instrs:  make([]Instruction, len(b.Instrs)),
		Locals:  make([]Local, len(b.Locals)),
		Regions: make([]Region, len(b.Regions)),
	}
	copy(c.Instrs, b.Instrs)
	copy(c.Locals, b.Locals)
	copy(c.Regions, b.Regions)
	return c
}

// Exits returns the indices of every return instruction in order.
func (b *Body) Exits() []int {
	var exits []int
	for i, in := range b.Instrs {
		if in.Op == OpReturn {
			exits = append(exits, i)
		}
	}
	return exits
}

// Insert places seq into the arena at position pos, shifting the instruction
// previously at pos (and everything after it) behind the inserted sequence.
//
// References are remapped so they keep resolving:
//   - a branch target strictly greater than pos shifts by len(seq);
//   - a branch target equal to pos is left at pos, i.e. control that
//     branched to the old occupant now runs the inserted sequence first and
//     falls through to it;
//   - region boundaries at or after pos shift by len(seq), preserving the
//     exact set of original instructions each region covers.
//
// pos must be in [0, len(Instrs)]; anything else is an out-of-bounds error.
func (b *Body) Insert(pos int, seq ...Instruction) error {
	if pos < 0 || pos > len(b.Instrs) {
		return errors.OutOfBounds(errors.PhaseInstrument, pos, len(b.Instrs))
	}
	if len(seq) == 0 {
		return nil
	}
	n := len(seq)

	instrs := make([]Instruction, 0, len(b.Instrs)+n)
	instrs = append(instrs, b.Instrs[:pos]...)
	instrs = append(instrs, seq...)
	instrs = append(instrs, b.Instrs[pos:]...)

	for i := range instrs {
		// Inserted instructions keep their targets as written.
		if i >= pos && i < pos+n {
			continue
		}
		if instrs[i].Op.HasTarget() && instrs[i].Target > pos {
			instrs[i].Target += n
		}
	}
	b.Instrs = instrs

	for i := range b.Regions {
		r := &b.Regions[i]
		if r.Start >= pos {
			r.Start += n
		}
		if r.End >= pos {
			r.End += n
		}
		if r.HandlerStart >= pos {
			r.HandlerStart += n
		}
		if r.HandlerEnd >= pos {
			r.HandlerEnd += n
		}
	}
	return nil
}

// Replace discards the body's entire instruction sequence, local-variable
// table, and exception-handler table, and installs seq as the new sequence.
// Replace is destructive and irreversible.
func (b *Body) Replace(seq ...Instruction) {
	b.Instrs = make([]Instruction, len(seq))
	copy(b.Instrs, seq)
	b.Locals = nil
	b.Regions = nil
}
