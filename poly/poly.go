// Package poly implements univariate polynomials over the finite fields of
// package field, together with arithmetic modulo a fixed polynomial.
package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/ppopth/gfpoly/field"
)

var (
	// ErrDomainMismatch is returned when coefficients or operands belong to
	// different fields.
	ErrDomainMismatch = errors.New("polynomials are over different fields")

	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero polynomial")
)

// Poly is an immutable polynomial with coefficients in a finite field. The
// coefficients are stored in ascending order without trailing zeros, so the zero
// polynomial has no coefficients and degree -1.
type Poly struct {
	field  field.Field
	coeffs []field.Element
}

// Key identifies a polynomial structurally. It is comparable and used as a map
// key by the result cache.
type Key struct {
	Field  field.Descriptor
	Degree int
	Digest [32]byte
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%x", k.Field, k.Degree, k.Digest[:8])
}

// New creates a polynomial from ascending coefficients. Every coefficient must
// be an element of f.
func New(f field.Field, coeffs []field.Element) (*Poly, error) {
	if f == nil {
		return nil, fmt.Errorf("nil field: %w", ErrDomainMismatch)
	}
	cs := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		if c == nil || (c.Field() != f && !field.Same(c.Field(), f)) {
			return nil, fmt.Errorf("coefficient %d is not in %s: %w", i, f.Descriptor(), ErrDomainMismatch)
		}
		cs[i] = c
	}
	return newPoly(f, cs), nil
}

// newPoly takes ownership of coeffs and trims trailing zeros
func newPoly(f field.Field, coeffs []field.Element) *Poly {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	return &Poly{field: f, coeffs: coeffs[:n]}
}

// FromUint64s creates a polynomial whose ascending coefficients are the field
// elements with the given integer representations.
func FromUint64s(f field.Field, coeffs ...uint64) *Poly {
	cs := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		cs[i] = f.FromUint64(c)
	}
	return newPoly(f, cs)
}

// FromDegrees creates the polynomial sum(coeffs[i] x^degrees[i]). A nil coeffs
// means every coefficient is one.
func FromDegrees(f field.Field, degrees []int, coeffs []uint64) (*Poly, error) {
	if coeffs != nil && len(coeffs) != len(degrees) {
		return nil, fmt.Errorf("%d degrees but %d coefficients", len(degrees), len(coeffs))
	}
	top := -1
	for _, d := range degrees {
		if d < 0 {
			return nil, fmt.Errorf("negative degree %d", d)
		}
		top = max(top, d)
	}
	cs := make([]field.Element, top+1)
	for i := range cs {
		cs[i] = f.Zero()
	}
	for i, d := range degrees {
		c := f.One()
		if coeffs != nil {
			c = f.FromUint64(coeffs[i])
		}
		cs[d] = cs[d].Add(c)
	}
	return newPoly(f, cs), nil
}

// FromInt decodes the integer representation sum(c_i q^i), where the digits
// c_i are integer representations of field elements and q is the field order.
func FromInt(f field.Field, v *big.Int) (*Poly, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative integer representation %v", v)
	}
	q := f.Order()
	rest := new(big.Int).Set(v)
	var cs []field.Element
	for rest.Sign() > 0 {
		digit := new(big.Int)
		rest.QuoRem(rest, q, digit)
		cs = append(cs, f.FromInt(digit))
	}
	return newPoly(f, cs), nil
}

// Zero returns the zero polynomial over f
func Zero(f field.Field) *Poly {
	return &Poly{field: f}
}

// One returns the constant polynomial 1 over f
func One(f field.Field) *Poly {
	return &Poly{field: f, coeffs: []field.Element{f.One()}}
}

// X returns the polynomial x over f
func X(f field.Field) *Poly {
	return &Poly{field: f, coeffs: []field.Element{f.Zero(), f.One()}}
}

// Monomial returns c x^d
func Monomial(c field.Element, d int) *Poly {
	f := c.Field()
	cs := make([]field.Element, d+1)
	for i := range cs {
		cs[i] = f.Zero()
	}
	cs[d] = c.Clone()
	return newPoly(f, cs)
}

// Field returns the coefficient field
func (p *Poly) Field() field.Field {
	return p.field
}

// Degree returns the degree, -1 for the zero polynomial
func (p *Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Coeff returns the coefficient of x^i
func (p *Poly) Coeff(i int) field.Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.field.Zero()
	}
	return p.coeffs[i]
}

// Coeffs returns a copy of the ascending coefficients
func (p *Poly) Coeffs() []field.Element {
	return append([]field.Element(nil), p.coeffs...)
}

// Lead returns the leading coefficient, zero for the zero polynomial
func (p *Poly) Lead() field.Element {
	return p.Coeff(p.Degree())
}

// Terms returns the number of non-zero coefficients
func (p *Poly) Terms() int {
	n := 0
	for _, c := range p.coeffs {
		if !c.IsZero() {
			n++
		}
	}
	return n
}

// IsZero reports whether p is the zero polynomial
func (p *Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// IsMonic reports whether the leading coefficient is one
func (p *Poly) IsMonic() bool {
	return !p.IsZero() && p.Lead().IsOne()
}

// IsX reports whether p is the polynomial x
func (p *Poly) IsX() bool {
	return len(p.coeffs) == 2 && p.coeffs[0].IsZero() && p.coeffs[1].IsOne()
}

// IsOne reports whether p is the constant polynomial 1
func (p *Poly) IsOne() bool {
	return len(p.coeffs) == 1 && p.coeffs[0].IsOne()
}

// Equal reports whether p and g are the same polynomial over the same field
func (p *Poly) Equal(g *Poly) bool {
	if g == nil || !field.Same(p.field, g.field) || len(p.coeffs) != len(g.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(g.coeffs[i]) {
			return false
		}
	}
	return true
}

// Int returns the integer representation sum(c_i q^i)
func (p *Poly) Int() *big.Int {
	q := p.field.Order()
	v := new(big.Int)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		v.Mul(v, q)
		v.Add(v, p.coeffs[i].Int())
	}
	return v
}

// Key returns the structural identity of p: field descriptor, degree and the
// SHA3-256 digest of the bit-packed coefficients.
func (p *Poly) Key() Key {
	packed := field.FieldElementsToBytes(p.coeffs, p.field.BitsPerElement())
	return Key{
		Field:  p.field.Descriptor(),
		Degree: p.Degree(),
		Digest: sha3.Sum256(packed),
	}
}

// String formats p from the highest degree down, e.g. "x^9 + 3x + 2"
func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		coeff := c.String()
		if strings.ContainsAny(coeff, " ") {
			coeff = "(" + coeff + ")"
		}
		var mono string
		switch i {
		case 0:
			terms = append(terms, coeff)
			continue
		case 1:
			mono = "x"
		default:
			mono = fmt.Sprintf("x^%d", i)
		}
		if c.IsOne() {
			terms = append(terms, mono)
		} else {
			terms = append(terms, coeff+mono)
		}
	}
	return strings.Join(terms, " + ")
}
