package weaver

import (
	"github.com/ilweave/hashcache/errors"
	"github.com/ilweave/hashcache/metadata"
)

// storeSequence builds the instruction sequence injected before each
// constructor exit: evaluate the compute method on the instance and store
// the result into the cache field.
//
//	load.self
//	load.self
//	call       compute
//	store.field cache
func storeSequence(compute *metadata.Method, cache *metadata.Field) []metadata.Instruction {
	return []metadata.Instruction{
		{Op: metadata.OpLoadSelf},
		{Op: metadata.OpLoadSelf},
		{Op: metadata.OpCall, Method: compute},
		{Op: metadata.OpStoreField, Field: cache},
	}
}

// injectAtExits inserts seq immediately before every return instruction of
// the constructor's body, preserving the relative order of multiple exits,
// and returns how many exits were instrumented.
//
// A body with no return instruction is malformed: every well-formed method
// body terminates each path with one, and silently instrumenting nothing
// would leave the cache unpopulated on every path.
func injectAtExits(ctor *metadata.Method, seq []metadata.Instruction, typeName string) (int, error) {
	if ctor.Body == nil {
		return 0, errors.MalformedBody(errors.PhaseInstrument, typeName, ctor.Name, "constructor has no body")
	}
	exits := ctor.Body.Exits()
	if len(exits) == 0 {
		return 0, errors.MalformedBody(errors.PhaseInstrument, typeName, ctor.Name, "no return instruction to inject before")
	}

	// Back to front, so earlier exit positions stay valid while later ones
	// are being shifted.
	for i := len(exits) - 1; i >= 0; i-- {
		if err := ctor.Body.Insert(exits[i], seq...); err != nil {
			return 0, errors.Wrap(errors.PhaseInstrument, errors.KindMalformedBody, err,
				typeName+"."+ctor.Name+": inject cache store")
		}
	}
	return len(exits), nil
}

// replaceWithCacheLoad discards the hash method's entire body and installs
// the minimal cached read:
//
//	load.self
//	load.field cache
//	return
//
// Destructive and irreversible, so it must run only after the original body
// has been relocated into the compute method.
func replaceWithCacheLoad(hash *metadata.Method, cache *metadata.Field) {
	hash.Body.Replace(
		metadata.Instruction{Op: metadata.OpLoadSelf},
		metadata.Instruction{Op: metadata.OpLoadField, Field: cache},
		metadata.Instruction{Op: metadata.OpReturn},
	)
}
