package weaver

import (
	"go.uber.org/zap"

	"github.com/ilweave/hashcache/errors"
	"github.com/ilweave/hashcache/metadata"
)

// Reserved names used when the corresponding Config field is empty.
const (
	DefaultMarker        = "CacheHashCode"
	DefaultHashMethod    = "GetHashCode"
	DefaultComputeMethod = "__ComputeHashCode"
	DefaultCacheField    = "__computedHash"
)

// Config configures a weaving pass. The zero value uses the default
// reserved names.
type Config struct {
	// Marker is the trigger marker name. Types without it are ignored.
	Marker string
	// HashMethod is the name of the hash override to cache.
	HashMethod string
	// ComputeMethod is the name given to the relocated hash logic.
	ComputeMethod string
	// CacheField is the name of the synthesized cache field.
	CacheField string
}

func (c Config) withDefaults() Config {
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.HashMethod == "" {
		c.HashMethod = DefaultHashMethod
	}
	if c.ComputeMethod == "" {
		c.ComputeMethod = DefaultComputeMethod
	}
	if c.CacheField == "" {
		c.CacheField = DefaultCacheField
	}
	return c
}

// Weaver applies the hash-caching transformation to modules.
//
// The weaver is stateless between Weave calls. Each Weave operates on an
// independent module graph, which it must own exclusively for the duration
// of the call.
type Weaver struct {
	cfg Config
}

// New creates a weaver with the given config.
func New(cfg Config) *Weaver {
	return &Weaver{cfg: cfg.withDefaults()}
}

// Weave applies the transformation to a module using cfg. It is shorthand
// for New(cfg).Weave(m).
func Weave(m *metadata.Module, cfg Config) *Report {
	return New(cfg).Weave(m)
}

// Weave transforms every candidate type in the module in table order,
// mutating the graph in place. It never serializes anything and never aborts
// early: each type's outcome is recorded in the returned report.
func (w *Weaver) Weave(m *metadata.Module) *Report {
	report := &Report{Module: m.Name}

	for _, t := range w.selectTypes(m) {
		out := w.weaveType(t)
		report.Outcomes = append(report.Outcomes, out)

		switch out.Status {
		case StatusWoven:
			Logger().Debug("type woven",
				zap.String("type", out.Type),
				zap.Int("constructors", out.Constructors),
				zap.Int("injections", out.Injections))
		case StatusSkipped:
			Logger().Info("type skipped",
				zap.String("type", out.Type),
				zap.Error(out.Err))
		case StatusFailed:
			Logger().Error("type failed",
				zap.String("type", out.Type),
				zap.Error(out.Err))
		}
	}
	return report
}

// weaveType transforms a single candidate type. Any returned failure after
// the cache field was added leaves the type partially mutated; there is no
// rollback, only the recorded outcome.
func (w *Weaver) weaveType(t *metadata.TypeDef) Outcome {
	out := Outcome{Type: t.Name}

	hash, err := w.locateHashMethod(t)
	if err != nil {
		if errors.IsKind(err, errors.KindMissingMethod) {
			out.Status = StatusSkipped
		} else {
			out.Status = StatusFailed
		}
		out.Err = err
		return out
	}

	if hash.Body == nil {
		out.Status = StatusFailed
		out.Err = errors.MalformedBody(errors.PhaseClone, t.Name, hash.Name, "hash method has no body to relocate")
		return out
	}

	ctors := t.Constructors()
	if len(ctors) == 0 {
		// Only implicit default construction is reachable, so there is no
		// body to instrument. The type is left untouched.
		out.Status = StatusSkipped
		out.Err = errors.UnsupportedConfiguration(t.Name,
			"no declared constructor to instrument")
		return out
	}

	cache, err := w.addCacheField(t)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	compute := w.cloneHashMethod(hash)
	t.AddMethod(compute)

	seq := storeSequence(compute, cache)
	for _, ctor := range ctors {
		n, err := injectAtExits(ctor, seq, t.Name)
		if err != nil {
			out.Status = StatusFailed
			out.Err = err
			return out
		}
		out.Constructors++
		out.Injections += n
	}

	// The original body has been relocated into compute; only now is it
	// safe to discard it.
	replaceWithCacheLoad(hash, cache)

	out.Status = StatusWoven
	return out
}
