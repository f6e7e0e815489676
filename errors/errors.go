package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSelect     Phase = "select"     // candidate type selection
	PhaseLocate     Phase = "locate"     // hash method lookup
	PhaseSynthesize Phase = "synthesize" // member synthesis
	PhaseClone      Phase = "clone"      // method body cloning
	PhaseInstrument Phase = "instrument" // body instrumentation
	PhaseValidate   Phase = "validate"   // structural validation
	PhaseEval       Phase = "eval"       // body evaluation
	PhaseDecode     Phase = "decode"     // module file to model
	PhaseEncode     Phase = "encode"     // model to module file
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedConfiguration Kind = "unsupported_configuration"
	KindMissingMethod            Kind = "missing_method"
	KindAmbiguousMethod          Kind = "ambiguous_method"
	KindDuplicateMember          Kind = "duplicate_member"
	KindMalformedBody            Kind = "malformed_body"
	KindInvalidData              Kind = "invalid_data"
	KindOutOfBounds              Kind = "out_of_bounds"
	KindNotFound                 Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // affected type name, if any
	Member string // affected member name, if any
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" at ")
		b.WriteString(e.Type)
		if e.Member != "" {
			b.WriteByte('.')
			b.WriteString(e.Member)
		}
	} else if e.Member != "" {
		b.WriteString(" at ")
		b.WriteString(e.Member)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err or any error in its chain is an *Error of the
// given kind, regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the affected type name
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Member sets the affected member name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedConfiguration creates an unsupported-configuration error for a
// candidate type that cannot be instrumented.
func UnsupportedConfiguration(typeName, detail string) *Error {
	return &Error{
		Phase:  PhaseInstrument,
		Kind:   KindUnsupportedConfiguration,
		Type:   typeName,
		Detail: detail,
	}
}

// MissingMethod creates an error for a candidate type lacking the required
// method signature.
func MissingMethod(typeName, methodName string) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindMissingMethod,
		Type:   typeName,
		Member: methodName,
		Detail: "no matching method",
	}
}

// AmbiguousMethod creates an error for a type exposing more than one method
// matching the required signature.
func AmbiguousMethod(typeName, methodName string, count int) *Error {
	return &Error{
		Phase:  PhaseLocate,
		Kind:   KindAmbiguousMethod,
		Type:   typeName,
		Member: methodName,
		Detail: fmt.Sprintf("%d methods match, expected exactly one", count),
	}
}

// DuplicateMember creates an error for a member name that already exists on
// the type.
func DuplicateMember(typeName, memberName string) *Error {
	return &Error{
		Phase:  PhaseSynthesize,
		Kind:   KindDuplicateMember,
		Type:   typeName,
		Member: memberName,
		Detail: "member already exists",
	}
}

// MalformedBody creates an error for a method body violating a structural
// invariant.
func MalformedBody(phase Phase, typeName, methodName, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedBody,
		Type:   typeName,
		Member: methodName,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
