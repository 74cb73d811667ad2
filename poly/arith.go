package poly

import (
	"fmt"

	"github.com/ppopth/gfpoly/field"
)

func (p *Poly) compatible(g *Poly) error {
	if g == nil || (p.field != g.field && !field.Same(p.field, g.field)) {
		return fmt.Errorf("%s and %s: %w", p.field.Descriptor(), describe(g), ErrDomainMismatch)
	}
	return nil
}

func describe(g *Poly) string {
	if g == nil || g.field == nil {
		return "<nil>"
	}
	return g.field.Descriptor().String()
}

func (p *Poly) zeros(n int) []field.Element {
	cs := make([]field.Element, n)
	for i := range cs {
		cs[i] = p.field.Zero()
	}
	return cs
}

// Add returns p + g
func (p *Poly) Add(g *Poly) (*Poly, error) {
	if err := p.compatible(g); err != nil {
		return nil, err
	}
	cs := p.zeros(max(len(p.coeffs), len(g.coeffs)))
	for i := range cs {
		cs[i] = p.Coeff(i).Add(g.Coeff(i))
	}
	return newPoly(p.field, cs), nil
}

// Sub returns p - g
func (p *Poly) Sub(g *Poly) (*Poly, error) {
	if err := p.compatible(g); err != nil {
		return nil, err
	}
	cs := p.zeros(max(len(p.coeffs), len(g.coeffs)))
	for i := range cs {
		cs[i] = p.Coeff(i).Sub(g.Coeff(i))
	}
	return newPoly(p.field, cs), nil
}

// Neg returns -p
func (p *Poly) Neg() *Poly {
	cs := make([]field.Element, len(p.coeffs))
	for i, c := range p.coeffs {
		cs[i] = c.Neg()
	}
	return newPoly(p.field, cs)
}

// Scale returns c * p
func (p *Poly) Scale(c field.Element) *Poly {
	cs := make([]field.Element, len(p.coeffs))
	for i, a := range p.coeffs {
		cs[i] = a.Mul(c)
	}
	return newPoly(p.field, cs)
}

// Monic returns p divided by its leading coefficient
func (p *Poly) Monic() *Poly {
	if p.IsZero() || p.IsMonic() {
		return p
	}
	return p.Scale(p.Lead().Inv())
}

// Mul returns p * g
func (p *Poly) Mul(g *Poly) (*Poly, error) {
	if err := p.compatible(g); err != nil {
		return nil, err
	}
	return p.mul(g), nil
}

func (p *Poly) mul(g *Poly) *Poly {
	if p.IsZero() || g.IsZero() {
		return Zero(p.field)
	}
	cs := p.zeros(len(p.coeffs) + len(g.coeffs) - 1)
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range g.coeffs {
			cs[i+j] = cs[i+j].Add(a.Mul(b))
		}
	}
	return newPoly(p.field, cs)
}

// DivMod returns the quotient and remainder of p divided by g
func (p *Poly) DivMod(g *Poly) (*Poly, *Poly, error) {
	if err := p.compatible(g); err != nil {
		return nil, nil, err
	}
	if g.IsZero() {
		return nil, nil, ErrDivisionByZero
	}
	q, r := p.divMod(g)
	return q, r, nil
}

func (p *Poly) divMod(g *Poly) (*Poly, *Poly) {
	dg := g.Degree()
	if p.Degree() < dg {
		return Zero(p.field), p
	}
	rem := append([]field.Element(nil), p.coeffs...)
	quo := p.zeros(len(rem) - dg)
	invLead := g.Lead().Inv()
	for k := len(rem) - 1; k >= dg; k-- {
		if rem[k].IsZero() {
			continue
		}
		c := rem[k].Mul(invLead)
		quo[k-dg] = c
		for i, b := range g.coeffs {
			rem[k-dg+i] = rem[k-dg+i].Sub(c.Mul(b))
		}
	}
	return newPoly(p.field, quo), newPoly(p.field, rem[:dg])
}

// Mod returns p mod g
func (p *Poly) Mod(g *Poly) (*Poly, error) {
	_, r, err := p.DivMod(g)
	return r, err
}

// GCD returns the monic greatest common divisor of p and g. The GCD of two zero
// polynomials is zero.
func (p *Poly) GCD(g *Poly) (*Poly, error) {
	if err := p.compatible(g); err != nil {
		return nil, err
	}
	a, b := p, g
	for !b.IsZero() {
		_, r := a.divMod(b)
		a, b = b, r
	}
	return a.Monic(), nil
}

// Evaluate returns p(x) by Horner's rule
func (p *Poly) Evaluate(x field.Element) field.Element {
	acc := p.field.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.coeffs[i])
	}
	return acc
}

// ComposeMod returns g(h) mod f
func ComposeMod(g, h, f *Poly) (*Poly, error) {
	if err := g.compatible(h); err != nil {
		return nil, err
	}
	if err := g.compatible(f); err != nil {
		return nil, err
	}
	if f.IsZero() {
		return nil, ErrDivisionByZero
	}
	_, hr := h.divMod(f)
	acc := Zero(g.field)
	for i := len(g.coeffs) - 1; i >= 0; i-- {
		sum, _ := acc.mul(hr).Add(newPoly(g.field, []field.Element{g.coeffs[i]}))
		_, acc = sum.divMod(f)
	}
	return acc, nil
}
