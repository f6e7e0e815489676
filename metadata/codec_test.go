package metadata

import (
	"testing"
)

func sampleModule() *Module {
	typ, _, _ := pointType()
	typ.Markers = []Marker{{Name: "CacheHashCode"}}
	typ.Methods[0].Body.Regions = []Region{{Start: 0, End: 6, HandlerStart: 6, HandlerEnd: 7}}
	return &Module{Name: "app", Types: []*TypeDef{typ}}
}

func TestCodec_RoundTrip(t *testing.T) {
	src := sampleModule()
	data, err := EncodeModule(src)
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}

	got, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}

	if got.Name != "app" || len(got.Types) != 1 {
		t.Fatalf("module = %q with %d types", got.Name, len(got.Types))
	}

	typ := got.Types[0]
	if typ.Name != "Point" || typ.Kind != KindClass || !typ.HasMarker("CacheHashCode") {
		t.Fatalf("type header mismatch: %+v", typ)
	}
	if len(typ.Fields) != 2 || len(typ.Methods) != 2 {
		t.Fatalf("got %d fields / %d methods, want 2 / 2", len(typ.Fields), len(typ.Methods))
	}

	// Operand identity: decoded instructions must reference the decoded
	// member objects, not copies.
	ctor := typ.MethodNamed(".ctor")
	if ctor == nil || ctor.Body == nil {
		t.Fatalf("constructor lost in round trip")
	}
	if ctor.Body.Instrs[2].Field != typ.FieldNamed("X") {
		t.Errorf("field operand does not alias the decoded field")
	}
	if len(ctor.Body.Regions) != 1 || ctor.Body.Regions[0].End != 6 {
		t.Errorf("regions lost in round trip: %+v", ctor.Body.Regions)
	}

	// Decoded behavior matches the source model.
	inst := Instance{}
	if _, _, err := Eval(ctor, inst, []int32{3, 4}); err != nil {
		t.Fatalf("Eval decoded ctor: %v", err)
	}
	hash := typ.MethodNamed("GetHashCode")
	gotHash, _, err := Eval(hash, inst, nil)
	if err != nil {
		t.Fatalf("Eval decoded hash: %v", err)
	}
	if want := int32(3*31 ^ 4); gotHash != want {
		t.Errorf("decoded hash = %d, want %d", gotHash, want)
	}
}

func TestCodec_Deterministic(t *testing.T) {
	a, err := EncodeModule(sampleModule())
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}
	b, err := EncodeModule(sampleModule())
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("encoding is not deterministic")
	}
}

func TestDecodeModule_BadData(t *testing.T) {
	if _, err := DecodeModule([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Fatalf("expected error for junk input")
	}
}

func TestEncodeModule_ForeignOperand(t *testing.T) {
	m := sampleModule()
	// An operand owned by no type in the module cannot be referenced.
	stray := &Field{Name: "stray", Type: Int32}
	hash := m.Types[0].MethodNamed("GetHashCode")
	hash.Body.Instrs[1].Field = stray

	if _, err := EncodeModule(m); err == nil {
		t.Fatalf("expected error for operand outside the module")
	}
}

func TestDecodeModule_UnresolvedReference(t *testing.T) {
	wm := wireModule{
		Name: "app",
		Types: []wireType{
			{
				Name: "Point",
				Kind: byte(KindClass),
				Methods: []wireMethod{
					{
						Name:   "GetHashCode",
						Return: Int32.Name,
						Body: &wireBody{
							Instrs: []wireInstr{
								{Op: byte(OpLoadSelf)},
								{Op: byte(OpLoadField), Field: &wireRef{Type: "Point", Member: "Missing"}},
								{Op: byte(OpReturn)},
							},
						},
					},
				},
			},
		},
	}
	data, err := cborEncMode.Marshal(&wm)
	if err != nil {
		t.Fatalf("marshal wire module: %v", err)
	}
	if _, err := DecodeModule(data); err == nil {
		t.Fatalf("expected error for reference to missing member")
	}
}
