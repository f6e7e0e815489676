package metadata

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ilweave/hashcache/errors"
)

// The module file format is a flat CBOR image of the metadata graph. Member
// operands are stored as (owner type, member name) references and resolved
// back to pointers on decode, so identity inside the decoded graph is exact.

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("metadata: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireRef struct {
	Type   string `cbor:"1,keyasint"`
	Member string `cbor:"2,keyasint"`
}

type wireInstr struct {
	Op     byte     `cbor:"1,keyasint"`
	Field  *wireRef `cbor:"2,keyasint,omitempty"`
	Method *wireRef `cbor:"3,keyasint,omitempty"`
	Value  int32    `cbor:"4,keyasint,omitempty"`
	Index  int      `cbor:"5,keyasint,omitempty"`
	Target int      `cbor:"6,keyasint,omitempty"`
}

type wireRegion struct {
	Start        int `cbor:"1,keyasint"`
	End          int `cbor:"2,keyasint"`
	HandlerStart int `cbor:"3,keyasint"`
	HandlerEnd   int `cbor:"4,keyasint"`
}

type wireVar struct {
	Name string `cbor:"1,keyasint"`
	Type string `cbor:"2,keyasint"`
}

type wireBody struct {
	Instrs  []wireInstr  `cbor:"1,keyasint,omitempty"`
	Locals  []wireVar    `cbor:"2,keyasint,omitempty"`
	Regions []wireRegion `cbor:"3,keyasint,omitempty"`
}

type wireField struct {
	Name     string `cbor:"1,keyasint"`
	Type     string `cbor:"2,keyasint"`
	InitOnly bool   `cbor:"3,keyasint,omitempty"`
}

type wireMethod struct {
	Name        string    `cbor:"1,keyasint"`
	Params      []wireVar `cbor:"2,keyasint,omitempty"`
	Return      string    `cbor:"3,keyasint"`
	Constructor bool      `cbor:"4,keyasint,omitempty"`
	Virtual     bool      `cbor:"5,keyasint,omitempty"`
	Static      bool      `cbor:"6,keyasint,omitempty"`
	Body        *wireBody `cbor:"7,keyasint,omitempty"`
}

type wireType struct {
	Name     string       `cbor:"1,keyasint"`
	Kind     byte         `cbor:"2,keyasint"`
	Abstract bool         `cbor:"3,keyasint,omitempty"`
	Markers  []string     `cbor:"4,keyasint,omitempty"`
	Fields   []wireField  `cbor:"5,keyasint,omitempty"`
	Methods  []wireMethod `cbor:"6,keyasint,omitempty"`
}

type wireModule struct {
	Name  string     `cbor:"1,keyasint"`
	Types []wireType `cbor:"2,keyasint,omitempty"`
}

// EncodeModule serializes a module to its CBOR file format. Every field and
// call operand must belong to a type in the module; an operand owned by an
// unknown type is an encode error.
func EncodeModule(m *Module) ([]byte, error) {
	owners := newOwnerIndex(m)

	wm := wireModule{Name: m.Name}
	for _, t := range m.Types {
		wt := wireType{
			Name:     t.Name,
			Kind:     byte(t.Kind),
			Abstract: t.Abstract,
		}
		for _, mk := range t.Markers {
			wt.Markers = append(wt.Markers, mk.Name)
		}
		for _, f := range t.Fields {
			wt.Fields = append(wt.Fields, wireField{Name: f.Name, Type: f.Type.Name, InitOnly: f.InitOnly})
		}
		for _, meth := range t.Methods {
			wmeth, err := encodeMethod(meth, owners)
			if err != nil {
				return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
					Type(t.Name).
					Member(meth.Name).
					Cause(err).
					Detail("encode method").
					Build()
			}
			wt.Methods = append(wt.Methods, wmeth)
		}
		wm.Types = append(wm.Types, wt)
	}

	data, err := cborEncMode.Marshal(&wm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal module")
	}
	return data, nil
}

func encodeMethod(m *Method, owners *ownerIndex) (wireMethod, error) {
	wm := wireMethod{
		Name:        m.Name,
		Return:      m.Return.Name,
		Constructor: m.Constructor,
		Virtual:     m.Virtual,
		Static:      m.Static,
	}
	for _, p := range m.Params {
		wm.Params = append(wm.Params, wireVar{Name: p.Name, Type: p.Type.Name})
	}
	if m.Body == nil {
		return wm, nil
	}

	wb := &wireBody{}
	for i, in := range m.Body.Instrs {
		wi := wireInstr{Op: byte(in.Op), Value: in.Value, Index: in.Index, Target: in.Target}
		if in.Field != nil {
			owner, ok := owners.fieldOwner[in.Field]
			if !ok {
				return wm, fmt.Errorf("instruction %d: field %q not owned by any module type", i, in.Field.Name)
			}
			wi.Field = &wireRef{Type: owner, Member: in.Field.Name}
		}
		if in.Method != nil {
			owner, ok := owners.methodOwner[in.Method]
			if !ok {
				return wm, fmt.Errorf("instruction %d: method %q not owned by any module type", i, in.Method.Name)
			}
			wi.Method = &wireRef{Type: owner, Member: in.Method.Name}
		}
		wb.Instrs = append(wb.Instrs, wi)
	}
	for _, l := range m.Body.Locals {
		wb.Locals = append(wb.Locals, wireVar{Name: l.Name, Type: l.Type.Name})
	}
	for _, r := range m.Body.Regions {
		wb.Regions = append(wb.Regions, wireRegion(r))
	}
	wm.Body = wb
	return wm, nil
}

// DecodeModule parses a CBOR module file back into a metadata graph. Member
// references are resolved against the decoded type table; a reference to a
// missing type or member is a decode error.
func DecodeModule(data []byte) (*Module, error) {
	var wm wireModule
	if err := cbor.Unmarshal(data, &wm); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "unmarshal module")
	}

	m := &Module{Name: wm.Name}

	// First pass builds the member tables so operand references can resolve
	// regardless of declaration order.
	for _, wt := range wm.Types {
		t := &TypeDef{
			Name:     wt.Name,
			Kind:     Kind(wt.Kind),
			Abstract: wt.Abstract,
		}
		for _, name := range wt.Markers {
			t.Markers = append(t.Markers, Marker{Name: name})
		}
		for _, wf := range wt.Fields {
			t.Fields = append(t.Fields, &Field{Name: wf.Name, Type: Descriptor{Name: wf.Type}, InitOnly: wf.InitOnly})
		}
		for _, wmeth := range wt.Methods {
			meth := &Method{
				Name:        wmeth.Name,
				Return:      Descriptor{Name: wmeth.Return},
				Constructor: wmeth.Constructor,
				Virtual:     wmeth.Virtual,
				Static:      wmeth.Static,
			}
			for _, p := range wmeth.Params {
				meth.Params = append(meth.Params, Param{Name: p.Name, Type: Descriptor{Name: p.Type}})
			}
			t.Methods = append(t.Methods, meth)
		}
		m.Types = append(m.Types, t)
	}

	// Second pass fills bodies and resolves operands.
	for ti, wt := range wm.Types {
		t := m.Types[ti]
		for mi, wmeth := range wt.Methods {
			if wmeth.Body == nil {
				continue
			}
			body, err := decodeBody(m, wmeth.Body)
			if err != nil {
				return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
					Type(t.Name).
					Member(wmeth.Name).
					Cause(err).
					Detail("decode method body").
					Build()
			}
			t.Methods[mi].Body = body
		}
	}
	return m, nil
}

func decodeBody(m *Module, wb *wireBody) (*Body, error) {
	b := &Body{}
	for i, wi := range wb.Instrs {
		in := Instruction{
			Op:     Opcode(wi.Op),
			Value:  wi.Value,
			Index:  wi.Index,
			Target: wi.Target,
		}
		if wi.Field != nil {
			f, err := resolveField(m, wi.Field)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			in.Field = f
		}
		if wi.Method != nil {
			meth, err := resolveMethod(m, wi.Method)
			if err != nil {
				return nil, fmt.Errorf("instruction %d: %w", i, err)
			}
			in.Method = meth
		}
		b.Instrs = append(b.Instrs, in)
	}
	for _, l := range wb.Locals {
		b.Locals = append(b.Locals, Local{Name: l.Name, Type: Descriptor{Name: l.Type}})
	}
	for _, r := range wb.Regions {
		b.Regions = append(b.Regions, Region(r))
	}
	return b, nil
}

func resolveField(m *Module, ref *wireRef) (*Field, error) {
	t := m.TypeNamed(ref.Type)
	if t == nil {
		return nil, errors.NotFound(errors.PhaseDecode, "type", ref.Type)
	}
	f := t.FieldNamed(ref.Member)
	if f == nil {
		return nil, errors.NotFound(errors.PhaseDecode, "field", ref.Type+"."+ref.Member)
	}
	return f, nil
}

func resolveMethod(m *Module, ref *wireRef) (*Method, error) {
	t := m.TypeNamed(ref.Type)
	if t == nil {
		return nil, errors.NotFound(errors.PhaseDecode, "type", ref.Type)
	}
	meth := t.MethodNamed(ref.Member)
	if meth == nil {
		return nil, errors.NotFound(errors.PhaseDecode, "method", ref.Type+"."+ref.Member)
	}
	return meth, nil
}

// ownerIndex maps member pointers back to their owning type name.
type ownerIndex struct {
	fieldOwner  map[*Field]string
	methodOwner map[*Method]string
}

func newOwnerIndex(m *Module) *ownerIndex {
	idx := &ownerIndex{
		fieldOwner:  make(map[*Field]string),
		methodOwner: make(map[*Method]string),
	}
	for _, t := range m.Types {
		for _, f := range t.Fields {
			idx.fieldOwner[f] = t.Name
		}
		for _, meth := range t.Methods {
			idx.methodOwner[meth] = t.Name
		}
	}
	return idx
}
