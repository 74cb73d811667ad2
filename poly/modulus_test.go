package poly

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ppopth/gfpoly/field"
)

var gf2 = field.MustPrimeField(2)

func randomPoly(rng *rand.Rand, f field.Field, degree int) *Poly {
	cs := make([]uint64, degree+1)
	q := f.Order().Uint64()
	for i := range cs {
		cs[i] = rng.Uint64() % q
	}
	return FromUint64s(f, cs...)
}

func TestModulusFrobenius(t *testing.T) {
	// x^2 + 1 is irreducible over GF(7) because 7 = 3 mod 4
	f := FromUint64s(gf7, 1, 0, 1)
	m, err := NewModulus(f)
	if err != nil {
		t.Fatal(err)
	}
	x := X(gf7)
	h1, err := m.PowQ(x, 1)
	if err != nil {
		t.Fatal(err)
	}
	if h1.String() != "6x" {
		t.Errorf("x^7 mod f = %s, want 6x", h1)
	}
	h2, _ := m.PowQ(x, 2)
	if !h2.Equal(x) {
		t.Errorf("x^49 mod f = %s, want x", h2)
	}
	e, _ := m.Exp(x, big.NewInt(4))
	if !e.IsOne() {
		t.Errorf("x^4 mod f = %s, want 1", e)
	}
}

func TestNewModulusRejectsConstants(t *testing.T) {
	if _, err := NewModulus(FromUint64s(gf7, 3)); err == nil {
		t.Errorf("constant modulus should be rejected")
	}
	if _, err := NewModulus(Zero(gf7)); err == nil {
		t.Errorf("zero modulus should be rejected")
	}
}

// The packed GF(2) backend must agree with the generic backend.
func TestGF2BackendMatchesGeneric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sparse, _ := FromDegrees(gf2, []int{200, 15, 3, 0}, nil)
	mid, _ := FromDegrees(gf2, []int{67, 5, 2, 1, 0}, nil)
	cs := make([]uint64, 131)
	for i := range cs {
		cs[i] = uint64(rng.Intn(2))
	}
	cs[0], cs[130] = 1, 1
	dense := FromUint64s(gf2, cs...)
	moduli := []*Poly{sparse, mid, dense, FromUint64s(gf2, 1, 1), FromUint64s(gf2, 0, 0, 1)}

	for _, f := range moduli {
		m, err := NewModulus(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := m.(*gf2Modulus); !ok {
			t.Fatalf("GF(2) modulus should use the packed backend")
		}
		g := &genericModulus{f: f, q: big.NewInt(2)}

		for trial := 0; trial < 5; trial++ {
			a := randomPoly(rng, gf2, 2*f.Degree()+3)
			b := randomPoly(rng, gf2, f.Degree())
			e := big.NewInt(rng.Int63n(1 << 20))

			check := func(name string, want, got *Poly, err error) {
				t.Helper()
				if err != nil {
					t.Fatal(err)
				}
				if !want.Equal(got) {
					t.Errorf("%s mod %s: generic %s, packed %s", name, f, want, got)
				}
			}
			want, _ := g.Reduce(a)
			got, err := m.Reduce(a)
			check("Reduce", want, got, err)

			want, _ = g.Mul(a, b)
			got, err = m.Mul(a, b)
			check("Mul", want, got, err)

			want, _ = g.Exp(a, e)
			got, err = m.Exp(a, e)
			check("Exp", want, got, err)

			want, _ = g.PowQ(b, 7)
			got, err = m.PowQ(b, 7)
			check("PowQ", want, got, err)

			want, _ = g.GCD(a)
			got, err = m.GCD(a)
			check("GCD", want, got, err)
		}
	}
}
