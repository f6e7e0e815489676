package metadata

import (
	"fmt"

	"github.com/ilweave/hashcache/errors"
)

// Validate checks the structural invariants of every method body in the
// module: each branch target and exception-region boundary must resolve to a
// position inside its own instruction sequence, and each field or call
// operand must be present.
func (m *Module) Validate() error {
	for _, t := range m.Types {
		for _, meth := range t.Methods {
			if meth.Body == nil {
				continue
			}
			if err := ValidateBody(meth.Body); err != nil {
				return errors.New(errors.PhaseValidate, errors.KindInvalidData).
					Type(t.Name).
					Member(meth.Name).
					Cause(err).
					Detail("invalid method body").
					Build()
			}
		}
	}
	return nil
}

// ValidateBody checks a single body's intra-body references.
func ValidateBody(b *Body) error {
	n := len(b.Instrs)
	for i, in := range b.Instrs {
		switch in.Op {
		case OpLoadField, OpStoreField:
			if in.Field == nil {
				return errors.InvalidData(errors.PhaseValidate,
					fmt.Sprintf("instruction %d: %s without field operand", i, in.Op))
			}
		case OpCall:
			if in.Method == nil {
				return errors.InvalidData(errors.PhaseValidate,
					fmt.Sprintf("instruction %d: call without method operand", i))
			}
		}
		if in.Op.HasTarget() && (in.Target < 0 || in.Target >= n) {
			return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
				Detail("instruction %d: branch target %d outside body of %d instructions", i, in.Target, n).
				Build()
		}
	}
	for i, r := range b.Regions {
		for _, bound := range []struct {
			name string
			pos  int
		}{
			{"start", r.Start},
			{"end", r.End},
			{"handler start", r.HandlerStart},
			{"handler end", r.HandlerEnd},
		} {
			// End boundaries are exclusive, so position n is legal.
			if bound.pos < 0 || bound.pos > n {
				return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
					Detail("region %d: %s %d outside body of %d instructions", i, bound.name, bound.pos, n).
					Build()
			}
		}
		if r.Start > r.End || r.HandlerStart > r.HandlerEnd {
			return errors.InvalidData(errors.PhaseValidate,
				fmt.Sprintf("region %d: inverted boundaries", i))
		}
	}
	return nil
}
