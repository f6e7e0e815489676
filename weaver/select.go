package weaver

import (
	"github.com/ilweave/hashcache/errors"
	"github.com/ilweave/hashcache/metadata"
)

// selectTypes filters the module's type table down to candidate types: a
// class or struct, not abstract, carrying the trigger marker. The result
// preserves table order so diagnostics are reproducible.
func (w *Weaver) selectTypes(m *metadata.Module) []*metadata.TypeDef {
	var out []*metadata.TypeDef
	for _, t := range m.Types {
		if t.Kind != metadata.KindClass && t.Kind != metadata.KindStruct {
			continue
		}
		if t.Abstract {
			continue
		}
		if !t.HasMarker(w.cfg.Marker) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// locateHashMethod finds the single hash override on a candidate type:
// the reserved name, virtual, zero parameters, returning the canonical
// 32-bit integer. Zero matches is a missing-method error; more than one is
// an ambiguity error rather than a silent first-match pick.
func (w *Weaver) locateHashMethod(t *metadata.TypeDef) (*metadata.Method, error) {
	var found *metadata.Method
	count := 0
	for _, m := range t.Methods {
		if m.Name != w.cfg.HashMethod {
			continue
		}
		if !m.Virtual || m.Static || len(m.Params) != 0 || m.Return != metadata.Int32 {
			continue
		}
		if found == nil {
			found = m
		}
		count++
	}
	if count == 0 {
		return nil, errors.MissingMethod(t.Name, w.cfg.HashMethod)
	}
	if count > 1 {
		return nil, errors.AmbiguousMethod(t.Name, w.cfg.HashMethod, count)
	}
	return found, nil
}
