package field

import (
	"math/big"
	"testing"
)

func setupPrimeField() *PrimeField {
	return MustPrimeField(101)
}

func TestNewPrimeFieldRejectsComposite(t *testing.T) {
	for _, p := range []int64{0, 1, 4, 100, 561} {
		if _, err := NewPrimeField(big.NewInt(p)); err == nil {
			t.Errorf("NewPrimeField(%d) should fail", p)
		}
	}
	if _, err := NewPrimeField(big.NewInt(4_294_967_311)); err != nil {
		t.Errorf("NewPrimeField(4294967311) failed: %v", err)
	}
}

func TestPrimeFieldBasic(t *testing.T) {
	field := setupPrimeField()

	if !field.Zero().IsZero() {
		t.Errorf("Zero element should be zero")
	}
	if !field.One().IsOne() {
		t.Errorf("One element should be one")
	}

	tests := []struct {
		name     string
		a, b     uint64
		expected uint64
		op       string
	}{
		{"add_basic", 25, 30, 55, "add"},
		{"add_with_reduction", 80, 50, 29, "add"},
		{"sub_basic", 50, 30, 20, "sub"},
		{"sub_with_reduction", 20, 30, 91, "sub"},
		{"mul_basic", 7, 9, 63, "mul"},
		{"mul_with_reduction", 15, 12, 79, "mul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := field.FromUint64(tt.a)
			b := field.FromUint64(tt.b)
			expected := field.FromUint64(tt.expected)

			var result Element
			switch tt.op {
			case "add":
				result = a.Add(b)
			case "sub":
				result = a.Sub(b)
			case "mul":
				result = a.Mul(b)
			default:
				t.Fatalf("unknown operation: %s", tt.op)
			}

			if !result.Equal(expected) {
				t.Errorf("%d %s %d = expected %d, got %s", tt.a, tt.op, tt.b, tt.expected, result)
			}
		})
	}
}

func TestPrimeFieldInversion(t *testing.T) {
	field := setupPrimeField()
	for _, val := range []uint64{1, 2, 3, 5, 7, 11, 25, 50, 100} {
		a := field.FromUint64(val)
		if !a.Mul(a.Inv()).IsOne() {
			t.Errorf("%d * %s != 1", val, a.Inv())
		}
	}
}

func TestPrimeFieldNegAndExp(t *testing.T) {
	field := setupPrimeField()
	pMinus1 := big.NewInt(100)
	for e := range field.Elements() {
		if !e.Add(e.Neg()).IsZero() {
			t.Errorf("%s + (-%s) != 0", e, e)
		}
		if e.IsZero() {
			continue
		}
		if !e.Exp(pMinus1).IsOne() {
			t.Errorf("%s^100 != 1", e)
		}
	}
}

func TestPrimeFieldElementsOrder(t *testing.T) {
	field := MustPrimeField(7)
	var i int64
	for e := range field.Elements() {
		if e.Int().Int64() != i {
			t.Fatalf("element %d is %s", i, e)
		}
		i++
	}
	if i != 7 {
		t.Errorf("expected 7 elements, got %d", i)
	}
	if d := field.Descriptor().String(); d != "GF(7)" {
		t.Errorf("descriptor %q", d)
	}
}

func TestPrimeFieldIncompatiblePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("mixing GF(7) and GF(11) should panic")
		}
	}()
	MustPrimeField(7).One().Add(MustPrimeField(11).One())
}
