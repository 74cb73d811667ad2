package poly

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ppopth/gfpoly/field"
)

var gf7 = field.MustPrimeField(7)

func TestPolyString(t *testing.T) {
	tests := []struct {
		p    *Poly
		want string
	}{
		{FromUint64s(gf7, 2, 0, 0, 0, 0, 0, 0, 0, 0, 1), "x^9 + 2"},
		{FromUint64s(gf7, 2, 3, 0, 1), "x^3 + 3x + 2"},
		{FromUint64s(gf7, 0, 1), "x"},
		{FromUint64s(gf7, 0, 0, 0), "0"},
		{FromUint64s(gf7, 5), "5"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPolyTrimsTrailingZeros(t *testing.T) {
	p := FromUint64s(gf7, 1, 2, 0, 0)
	if p.Degree() != 1 || p.Terms() != 2 {
		t.Errorf("degree %d, terms %d", p.Degree(), p.Terms())
	}
	if Zero(gf7).Degree() != -1 {
		t.Errorf("zero polynomial should have degree -1")
	}
}

func TestFromIntRoundTrip(t *testing.T) {
	v := new(big.Int).Exp(big.NewInt(7), big.NewInt(9), nil)
	v.Add(v, big.NewInt(2))
	p, err := FromInt(gf7, v)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "x^9 + 2" {
		t.Errorf("FromInt(7^9 + 2) = %s", p)
	}
	if p.Int().Cmp(v) != 0 {
		t.Errorf("Int() = %v, want %v", p.Int(), v)
	}
	if _, err := FromInt(gf7, big.NewInt(-1)); err == nil {
		t.Errorf("negative integer should be rejected")
	}
}

func TestFromDegrees(t *testing.T) {
	p, err := FromDegrees(gf7, []int{9, 1, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "x^9 + x + 1" {
		t.Errorf("FromDegrees = %s", p)
	}
	p, err = FromDegrees(gf7, []int{2, 0}, []uint64{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "3x^2 + 4" {
		t.Errorf("FromDegrees = %s", p)
	}
	if _, err := FromDegrees(gf7, []int{-1}, nil); err == nil {
		t.Errorf("negative degree should be rejected")
	}
}

func TestNewRejectsForeignCoefficients(t *testing.T) {
	gf5 := field.MustPrimeField(5)
	_, err := New(gf7, []field.Element{gf7.One(), gf5.One()})
	if !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("expected ErrDomainMismatch, got %v", err)
	}
	a := FromUint64s(gf7, 1, 1)
	if _, err := a.Add(FromUint64s(gf5, 1, 1)); !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("expected ErrDomainMismatch, got %v", err)
	}
}

func TestDivModAndGCD(t *testing.T) {
	// (x^2 - 1) = (x + 1)(x - 1)
	a := FromUint64s(gf7, 6, 0, 1)
	b := FromUint64s(gf7, 6, 1)
	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "x + 1" || !r.IsZero() {
		t.Errorf("quotient %s, remainder %s", q, r)
	}

	// gcd(2(x^2 - 1), x^2 + 2x + 1) = x + 1
	g, err := a.Scale(gf7.FromUint64(2)).GCD(FromUint64s(gf7, 1, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if g.String() != "x + 1" {
		t.Errorf("gcd = %s", g)
	}

	if _, _, err := a.DivMod(Zero(gf7)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestEvaluateAndCompose(t *testing.T) {
	g := FromUint64s(gf7, 1, 0, 1) // x^2 + 1
	if v := g.Evaluate(gf7.FromUint64(3)); v.Int().Int64() != 3 {
		t.Errorf("g(3) = %s, want 3", v)
	}

	h := FromUint64s(gf7, 1, 1)       // x + 1
	f := FromUint64s(gf7, 1, 0, 0, 1) // x^3 + 1
	got, err := ComposeMod(g, h, f)
	if err != nil {
		t.Fatal(err)
	}
	// (x + 1)^2 + 1 = x^2 + 2x + 2
	if got.String() != "x^2 + 2x + 2" {
		t.Errorf("g(h) mod f = %s", got)
	}
}

func TestKey(t *testing.T) {
	a := FromUint64s(gf7, 2, 0, 1)
	b := FromUint64s(gf7, 2, 0, 1)
	if a.Key() != b.Key() {
		t.Errorf("equal polynomials have different keys")
	}
	if a.Key() == FromUint64s(gf7, 2, 1, 1).Key() {
		t.Errorf("different polynomials share a key")
	}
	if a.Key() == FromUint64s(field.MustPrimeField(11), 2, 0, 1).Key() {
		t.Errorf("polynomials over different fields share a key")
	}
	if FromUint64s(gf7, 1).Key() != FromUint64s(gf7, 1, 0).Key() {
		t.Errorf("trailing zeros change the key")
	}
}

func TestMonicAndEqual(t *testing.T) {
	p := FromUint64s(gf7, 3, 0, 2)
	m := p.Monic()
	if !m.IsMonic() || m.String() != "x^2 + 5" {
		t.Errorf("Monic() = %s", m)
	}
	if p.Equal(m) || !m.Equal(FromUint64s(gf7, 5, 0, 1)) {
		t.Errorf("Equal is wrong")
	}
}
