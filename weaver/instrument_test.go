package weaver

import (
	"testing"

	"github.com/ilweave/hashcache/errors"
	"github.com/ilweave/hashcache/metadata"
)

func TestInjectAtExits_NoReturnIsMalformed(t *testing.T) {
	ctor := &metadata.Method{
		Name:        ".ctor",
		Constructor: true,
		Return:      metadata.Void,
		Body: &metadata.Body{
			Instrs: []metadata.Instruction{{Op: metadata.OpNop}},
		},
	}
	seq := []metadata.Instruction{{Op: metadata.OpNop}}

	n, err := injectAtExits(ctor, seq, "T")
	if err == nil {
		t.Fatalf("expected malformed-body error for returnless constructor")
	}
	if !errors.IsKind(err, errors.KindMalformedBody) {
		t.Errorf("err = %v, want malformed_body", err)
	}
	if n != 0 {
		t.Errorf("instrumented %d exits on a malformed body", n)
	}
	// The body must not have been partially instrumented.
	if len(ctor.Body.Instrs) != 1 {
		t.Errorf("malformed body was mutated")
	}
}

func TestInjectAtExits_NilBody(t *testing.T) {
	ctor := &metadata.Method{Name: ".ctor", Constructor: true, Return: metadata.Void}
	if _, err := injectAtExits(ctor, []metadata.Instruction{{Op: metadata.OpNop}}, "T"); err == nil {
		t.Fatalf("expected error for constructor without a body")
	}
}

func TestInjectAtExits_PreservesExitOrder(t *testing.T) {
	ctor := &metadata.Method{
		Name:        ".ctor",
		Constructor: true,
		Return:      metadata.Void,
		Body: &metadata.Body{
			Instrs: []metadata.Instruction{
				{Op: metadata.OpLoadConst, Value: 1},
				{Op: metadata.OpReturn},
				{Op: metadata.OpLoadConst, Value: 2},
				{Op: metadata.OpReturn},
				{Op: metadata.OpLoadConst, Value: 3},
				{Op: metadata.OpReturn},
			},
		},
	}
	seq := []metadata.Instruction{{Op: metadata.OpNop}, {Op: metadata.OpNop}}

	n, err := injectAtExits(ctor, seq, "T")
	if err != nil {
		t.Fatalf("injectAtExits: %v", err)
	}
	if n != 3 {
		t.Errorf("instrumented %d exits, want 3", n)
	}

	// Each return is still immediately preceded by the injected sequence,
	// and the load.const markers stay in their original relative order.
	var markers []int32
	for i, in := range ctor.Body.Instrs {
		if in.Op == metadata.OpLoadConst {
			markers = append(markers, in.Value)
		}
		if in.Op == metadata.OpReturn {
			if ctor.Body.Instrs[i-1].Op != metadata.OpNop || ctor.Body.Instrs[i-2].Op != metadata.OpNop {
				t.Errorf("return at %d not preceded by the injected sequence", i)
			}
		}
	}
	if len(markers) != 3 || markers[0] != 1 || markers[1] != 2 || markers[2] != 3 {
		t.Errorf("markers out of order: %v", markers)
	}
}

func TestStoreSequenceShape(t *testing.T) {
	compute := &metadata.Method{Name: DefaultComputeMethod, Return: metadata.Int32}
	cache := &metadata.Field{Name: DefaultCacheField, Type: metadata.Int32}

	seq := storeSequence(compute, cache)
	wantOps := []metadata.Opcode{
		metadata.OpLoadSelf, metadata.OpLoadSelf, metadata.OpCall, metadata.OpStoreField,
	}
	if len(seq) != len(wantOps) {
		t.Fatalf("sequence has %d instructions, want %d", len(seq), len(wantOps))
	}
	for i, op := range wantOps {
		if seq[i].Op != op {
			t.Errorf("seq[%d] = %s, want %s", i, seq[i].Op, op)
		}
	}
	if seq[2].Method != compute || seq[3].Field != cache {
		t.Errorf("sequence operands wrong")
	}
}

func TestReplaceWithCacheLoad(t *testing.T) {
	cache := &metadata.Field{Name: DefaultCacheField, Type: metadata.Int32}
	hash := &metadata.Method{
		Name:    "GetHashCode",
		Return:  metadata.Int32,
		Virtual: true,
		Body: &metadata.Body{
			Instrs:  []metadata.Instruction{{Op: metadata.OpLoadConst, Value: 9}, {Op: metadata.OpReturn}},
			Locals:  []metadata.Local{{Name: "tmp", Type: metadata.Int32}},
			Regions: []metadata.Region{{Start: 0, End: 1}},
		},
	}

	replaceWithCacheLoad(hash, cache)

	if len(hash.Body.Instrs) != 3 {
		t.Fatalf("replaced body has %d instructions, want 3", len(hash.Body.Instrs))
	}
	if hash.Body.Instrs[0].Op != metadata.OpLoadSelf ||
		hash.Body.Instrs[1].Op != metadata.OpLoadField ||
		hash.Body.Instrs[2].Op != metadata.OpReturn {
		t.Errorf("replaced body shape wrong: %+v", hash.Body.Instrs)
	}
	if hash.Body.Instrs[1].Field != cache {
		t.Errorf("replaced body does not read the cache field")
	}
	if hash.Body.Locals != nil || hash.Body.Regions != nil {
		t.Errorf("locals or regions survived the replacement")
	}
}
