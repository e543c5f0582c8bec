package models

import (
	"errors"
	"testing"
)

func TestPrimitive(t *testing.T) {
	for _, name := range PrimitiveNames {
		t.Run(name, func(t *testing.T) {
			mesh, err := Primitive(name, 12)
			if err != nil {
				t.Fatalf("Primitive(%q): %v", name, err)
			}
			if mesh.TriangleCount() == 0 {
				t.Fatal("no triangles")
			}
			if err := mesh.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
			box := mesh.Bounds()
			if box.Min.X < -1.5 || box.Max.X > 1.5 {
				t.Errorf("bounds = %+v", box)
			}
		})
	}
}

func TestPrimitiveUnknown(t *testing.T) {
	if _, err := Primitive("teapot", 0); !errors.Is(err, ErrUnknownPrimitive) {
		t.Errorf("err = %v, want ErrUnknownPrimitive", err)
	}
}
