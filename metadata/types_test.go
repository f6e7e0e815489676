package metadata

import "testing"

func TestTypeDefLookups(t *testing.T) {
	typ, ctor, hash := pointType()

	if typ.FieldNamed("X") == nil || typ.FieldNamed("Z") != nil {
		t.Errorf("FieldNamed lookup wrong")
	}
	if typ.MethodNamed("GetHashCode") != hash {
		t.Errorf("MethodNamed did not return the hash method")
	}
	typ.Markers = append(typ.Markers, Marker{Name: "CacheHashCode"})
	if !typ.HasMarker("CacheHashCode") || typ.HasMarker("Other") {
		t.Errorf("HasMarker lookup wrong")
	}

	ctors := typ.Constructors()
	if len(ctors) != 1 || ctors[0] != ctor {
		t.Fatalf("Constructors() = %v", ctors)
	}

	// Static constructors are not instance constructors.
	typ.AddMethod(&Method{Name: ".cctor", Constructor: true, Static: true, Return: Void})
	if got := typ.Constructors(); len(got) != 1 {
		t.Errorf("static constructor counted as instance constructor")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		KindClass:     "class",
		KindStruct:    "struct",
		KindEnum:      "enum",
		KindInterface: "interface",
		Kind(99):      "unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestOpcodeHasTarget(t *testing.T) {
	if !OpBranch.HasTarget() || !OpBranchIfEq.HasTarget() {
		t.Errorf("branch opcodes must carry targets")
	}
	for _, op := range []Opcode{OpNop, OpLoadSelf, OpLoadField, OpStoreField, OpCall, OpReturn, OpLoadConst} {
		if op.HasTarget() {
			t.Errorf("%s must not carry a target", op)
		}
	}
}
