// Package metadata provides a mutable in-memory model of a binary module's
// metadata: types, fields, methods, and method bodies as ordered instruction
// sequences.
//
// The model is the substrate the weaver package transforms. Method bodies are
// instruction arenas addressed by index: branch targets and exception-region
// boundaries are positions in the sequence, never raw instruction pointers.
// Cloning a body is therefore a plain deep copy, and insertion is a
// well-defined "shift and remap" operation (see Body.Insert).
//
// The package also carries a compact CBOR codec for module files
// (EncodeModule/DecodeModule), structural validation (Module.Validate), and a
// small stack-machine evaluator (Eval) used for verification and tests. None
// of these are required by the weaver itself, which only mutates the graph.
package metadata
