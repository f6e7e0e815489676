// Package weaver implements a compile-time hash-caching transformation over
// the metadata model.
//
// # Overview
//
// For every candidate type (a non-abstract class or struct carrying the
// trigger marker), the weaver caches the result of the type's hash method:
//
//  1. A cache field is added to the type.
//  2. The hash method's body is cloned into a new compute method, logic
//     untouched.
//  3. Every non-static constructor is instrumented so every one of its exit
//     points stores the compute method's result into the cache field before
//     returning.
//  4. The hash method's body is replaced with a plain load of the cache
//     field.
//
// For a type Point with fields X and Y this turns
//
//	Point(x, y) { this.X = x; this.Y = y; return }
//	GetHashCode() { return this.X * 31 ^ this.Y }
//
// into
//
//	Point(x, y) { this.X = x; this.Y = y
//	              this.__computedHash = this.__ComputeHashCode(); return }
//	GetHashCode() { return this.__computedHash }
//	__ComputeHashCode() { return this.X * 31 ^ this.Y }
//
// # Usage
//
//	report := weaver.Weave(module, weaver.Config{})
//	for _, out := range report.Outcomes {
//	    fmt.Println(out.Type, out.Status)
//	}
//
// # Failure isolation
//
// Types are processed independently, front to back in table order. A failure
// while transforming one type is recorded in its Outcome and never aborts the
// pass; callers must treat any failed type as untrustworthy in the module
// output, since partial mutations are not rolled back.
//
// Re-running the weaver on an already-woven module fails per type with a
// duplicate-member error: the cache field already exists. This is deliberate;
// re-weaving is not supported.
package weaver
