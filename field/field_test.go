package field

import (
	"math/big"
	"testing"
)

func TestFromDescriptor(t *testing.T) {
	gf4, err := NewBinaryField(2, big.NewInt(0b111))
	if err != nil {
		t.Fatal(err)
	}
	gf9, err := NewExtensionField(3, []uint64{2, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Field{MustPrimeField(7), gf4, gf9, NewBinaryFieldGF2_8()} {
		t.Run(f.Descriptor().String(), func(t *testing.T) {
			g, err := FromDescriptor(f.Descriptor())
			if err != nil {
				t.Fatal(err)
			}
			if !Same(f, g) {
				t.Errorf("rebuilt %v, want %v", g.Descriptor(), f.Descriptor())
			}
			if g.Order().Cmp(f.Order()) != 0 {
				t.Errorf("order %v, want %v", g.Order(), f.Order())
			}
		})
	}

	invalid := []Descriptor{
		{Characteristic: "x", Degree: 1},
		{Characteristic: "9", Degree: 1},
		{Characteristic: "3", Degree: 2, Modulus: "2,2"},
		{Characteristic: "2", Degree: 2, Modulus: "1,2,1"},
		{Characteristic: "3", Degree: 0},
	}
	for _, d := range invalid {
		if _, err := FromDescriptor(d); err == nil {
			t.Errorf("expected error for %+v", d)
		}
	}
}
