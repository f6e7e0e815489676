// Package hashcache provides a compile-time hash-caching transformation for
// binary module metadata.
//
// The weaver caches the result of a type's hash-computation method: the
// original logic is relocated into a synthesized compute method, every
// constructor exit path is instrumented to evaluate it once and store the
// result into a synthesized cache field, and the original hash method is
// reduced to a plain read of that field.
//
// # Architecture Overview
//
// The library is organized into a small set of packages with distinct
// responsibilities:
//
//	hashcache/           Root package documentation
//	├── metadata/        Mutable in-memory metadata model: types, fields,
//	│                    methods, instruction-arena bodies, plus a CBOR
//	│                    module codec, structural validation, and a small
//	│                    evaluator for verification
//	├── weaver/          The transformation engine with per-type failure
//	│                    isolation and a structured pass report
//	├── errors/          Structured error types (phase and kind)
//	└── cmd/weave/       CLI: load a module file, weave it, write it back;
//	                     interactive report browser
//
// # Quick Start
//
// Weave an in-memory module:
//
//	report := weaver.Weave(module, weaver.Config{})
//	if report.Failed() > 0 {
//	    // do not trust the failed types' output
//	}
//
// Types are selected by a trigger marker (default "CacheHashCode") and are
// processed independently: one type's failure never aborts the pass.
package hashcache
