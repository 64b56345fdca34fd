package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glint-lang/glint/schema"
)

const pointYAML = `
name: Point
properties:
  - name: x
    type: number
  - name: y
    type: number
  - name: label
    type: string
`

func TestLoad(t *testing.T) {
	s, err := schema.Load([]byte(pointYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "Point" {
		t.Errorf("Name = %q", s.Name)
	}
	want := []string{"x", "y", "label"}
	got := s.PropertyNames()
	if len(got) != len(want) {
		t.Fatalf("PropertyNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PropertyNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if s.Properties[2].Type != "string" {
		t.Errorf("Properties[2].Type = %q", s.Properties[2].Type)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"malformed document",
			"name: [unclosed",
			"parsing schema",
		},
		{
			"missing schema name",
			"properties:\n  - name: x\n",
			"schema has no name",
		},
		{
			"unnamed property",
			"name: P\nproperties:\n  - type: number\n",
			"property 0 has no name",
		},
		{
			"duplicate property",
			"name: P\nproperties:\n  - name: x\n  - name: x\n",
			`duplicate property "x"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Load([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.yaml")
	if err := os.WriteFile(path, []byte(pointYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := schema.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(s.Properties) != 3 {
		t.Errorf("got %d properties, want 3", len(s.Properties))
	}

	if _, err := schema.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
