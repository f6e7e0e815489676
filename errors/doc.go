// Package errors provides structured error types for the hashcache library.
//
// Errors are categorized by Phase (which stage of processing failed) and Kind
// (error category). The Error type carries the affected type and member names
// plus a cause chain. All errors implement the standard error interface and
// support errors.Is/As; Is matches on Phase and Kind.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseInstrument, errors.KindMalformedBody).
//		Type("Point").
//		Member(".ctor").
//		Detail("no return instruction").
//		Build()
//
// Or the convenience constructors for the common cases:
//
//	err := errors.DuplicateMember("Point", "__computedHash")
//	err := errors.MissingMethod("Point", "GetHashCode")
package errors
