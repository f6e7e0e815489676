package weaver

import (
	"testing"

	"github.com/ilweave/hashcache/metadata"
)

func TestSelectTypes(t *testing.T) {
	marked := func(name string, kind metadata.Kind, abstract bool) *metadata.TypeDef {
		return &metadata.TypeDef{
			Name:     name,
			Kind:     kind,
			Abstract: abstract,
			Markers:  []metadata.Marker{{Name: DefaultMarker}},
		}
	}

	m := &metadata.Module{
		Name: "app",
		Types: []*metadata.TypeDef{
			marked("A", metadata.KindClass, false),
			marked("B", metadata.KindStruct, false),
			marked("C", metadata.KindEnum, false),
			marked("D", metadata.KindInterface, false),
			marked("E", metadata.KindClass, true),
			{Name: "F", Kind: metadata.KindClass}, // no marker
			marked("G", metadata.KindStruct, false),
		},
	}

	got := New(Config{}).selectTypes(m)
	want := []string{"A", "B", "G"}
	if len(got) != len(want) {
		t.Fatalf("selected %d types, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("selected[%d] = %s, want %s (table order must be preserved)", i, got[i].Name, name)
		}
	}
}

func TestLocateHashMethod(t *testing.T) {
	w := New(Config{})
	hash := &metadata.Method{Name: "GetHashCode", Return: metadata.Int32, Virtual: true}

	typ := &metadata.TypeDef{
		Name: "T",
		Kind: metadata.KindClass,
		Methods: []*metadata.Method{
			// Same name but wrong shape: not virtual, has params, wrong
			// return, static. None of these may match.
			{Name: "GetHashCode", Return: metadata.Int32},
			{Name: "GetHashCode", Return: metadata.Int32, Virtual: true,
				Params: []metadata.Param{{Name: "seed", Type: metadata.Int32}}},
			{Name: "GetHashCode", Return: metadata.Int64, Virtual: true},
			{Name: "GetHashCode", Return: metadata.Int32, Virtual: true, Static: true},
			hash,
		},
	}

	got, err := w.locateHashMethod(typ)
	if err != nil {
		t.Fatalf("locateHashMethod: %v", err)
	}
	if got != hash {
		t.Errorf("located %+v, want the virtual zero-arg int32 override", got)
	}
}
