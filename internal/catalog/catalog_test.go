package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	if cat.Len() < 5 {
		t.Fatalf("suspiciously small catalog: %d stages", cat.Len())
	}
	for _, id := range []string{"battlefield", "fd", "ps2", "smashville"} {
		if !cat.Has(id) {
			t.Fatalf("missing stage %q", id)
		}
	}
	if cat.Has("fountain-of-dreams") {
		t.Fatalf("unexpected stage in catalog")
	}
}

func TestLoadFilePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.json")
	data := `[
		{"id": "zeta", "name": "Zeta", "shortName": "Z"},
		{"id": "alpha", "name": "Alpha", "shortName": "A"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	ids := cat.IDs()
	if len(ids) != 2 || ids[0] != "zeta" || ids[1] != "alpha" {
		t.Fatalf("order not preserved: %v", ids)
	}
}

func TestLoadRejectsBadLists(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "empty list", data: `[]`},
		{name: "missing id", data: `[{"name": "Nameless"}]`},
		{name: "duplicate id", data: `[{"id": "fd"}, {"id": "fd"}]`},
		{name: "not json", data: `stages: nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse([]byte(tc.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
