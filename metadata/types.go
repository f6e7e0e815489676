package metadata

// Kind classifies a type definition.
type Kind byte

const (
	KindClass     Kind = iota // reference type
	KindStruct                // value type
	KindEnum                  // excluded from transformation
	KindInterface             // excluded from transformation
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// Marker is a parameterless annotation attached to a type definition.
// Markers are matched by name identity only.
type Marker struct {
	Name string
}

// Descriptor names a value type used for fields, parameters, locals, and
// method returns. Descriptors compare by name.
type Descriptor struct {
	Name string
}

// Canonical primitive descriptors.
var (
	Void  = Descriptor{Name: "void"}
	Int32 = Descriptor{Name: "int32"}
	Int64 = Descriptor{Name: "int64"}
	Bool  = Descriptor{Name: "bool"}
)

// Module is the metadata for one binary module: a named, ordered type table.
type Module struct {
	Name  string
	Types []*TypeDef
}

// TypeNamed returns the type definition with the given name, or nil.
func (m *Module) TypeNamed(name string) *TypeDef {
	for _, t := range m.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TypeDef is a named, kinded type owning fields and methods.
type TypeDef struct {
	Name     string
	Kind     Kind
	Abstract bool
	Markers  []Marker
	Fields   []*Field
	Methods  []*Method
}

// HasMarker reports whether the type carries a marker with the given name.
func (t *TypeDef) HasMarker(name string) bool {
	for _, mk := range t.Markers {
		if mk.Name == name {
			return true
		}
	}
	return false
}

// FieldNamed returns the field with the given name, or nil.
func (t *TypeDef) FieldNamed(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MethodNamed returns the first method with the given name, or nil.
func (t *TypeDef) MethodNamed(name string) *Method {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// AddField appends a field to the type. Collision policy is the caller's
// concern; use FieldNamed to detect existing members.
func (t *TypeDef) AddField(f *Field) {
	t.Fields = append(t.Fields, f)
}

// AddMethod appends a method to the type.
func (t *TypeDef) AddMethod(m *Method) {
	t.Methods = append(t.Methods, m)
}

// Constructors returns the type's non-static constructors in table order.
func (t *TypeDef) Constructors() []*Method {
	var out []*Method
	for _, m := range t.Methods {
		if m.Constructor && !m.Static {
			out = append(out, m)
		}
	}
	return out
}

// Field is a named, typed member owned by exactly one type. InitOnly records
// write-once-per-instance intent; the model does not enforce it.
type Field struct {
	Name     string
	Type     Descriptor
	InitOnly bool
}

// Param is a method parameter declaration.
type Param struct {
	Name string
	Type Descriptor
}

// Local is a local-variable declaration in a method body.
type Local struct {
	Name string
	Type Descriptor
}

// Method is a named member owned by exactly one type. Body is exclusively
// owned: cloning a method always produces an independent body.
type Method struct {
	Name        string
	Params      []Param
	Return      Descriptor
	Constructor bool
	Virtual     bool
	Static      bool
	Body        *Body
}

// Clone returns a copy of the method under a new name. The parameter list is
// copied, flags and return type are preserved, and the body is a deep,
// independent copy of the source body.
func (m *Method) Clone(name string) *Method {
	c := &Method{
		Name:        name,
		Params:      make([]Param, len(m.Params)),
		Return:      m.Return,
		Constructor: m.Constructor,
		Virtual:     m.Virtual,
		Static:      m.Static,
	}
	copy(c.Params, m.Params)
	if m.Body != nil {
		c.Body = m.Body.Clone()
	}
	return c
}
