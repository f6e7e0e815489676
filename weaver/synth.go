package weaver

import (
	"github.com/ilweave/hashcache/errors"
	"github.com/ilweave/hashcache/metadata"
)

// addCacheField synthesizes the cache field on a candidate type. An existing
// field with the reserved name means the type was already woven in a prior
// pass; that is a duplicate-member error, never a silent overwrite.
func (w *Weaver) addCacheField(t *metadata.TypeDef) (*metadata.Field, error) {
	if t.FieldNamed(w.cfg.CacheField) != nil {
		return nil, errors.DuplicateMember(t.Name, w.cfg.CacheField)
	}
	f := &metadata.Field{
		Name:     w.cfg.CacheField,
		Type:     metadata.Int32,
		InitOnly: true,
	}
	t.AddField(f)
	return f, nil
}

// cloneHashMethod relocates the hash logic into a fresh compute method:
// identical parameter list, return type, and flags, under the reserved
// compute name, with a deep, independent body. The compute name is only
// synthesized once per type per pass, so no collision check is performed
// when the caller registers it.
func (w *Weaver) cloneHashMethod(hash *metadata.Method) *metadata.Method {
	return hash.Clone(w.cfg.ComputeMethod)
}
