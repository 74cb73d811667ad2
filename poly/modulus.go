package poly

import (
	"fmt"
	"math/big"
)

// Modulus is arithmetic in the residue ring F[x]/(f) for a fixed polynomial f.
// Inputs of any degree are accepted and reduced first; results are always
// reduced.
type Modulus interface {
	// Poly returns f
	Poly() *Poly

	// Reduce returns a mod f
	Reduce(a *Poly) (*Poly, error)

	// Mul returns a * b mod f
	Mul(a, b *Poly) (*Poly, error)

	// Exp returns a^e mod f for e >= 0
	Exp(a *Poly, e *big.Int) (*Poly, error)

	// PowQ returns a^(q^k) mod f, q being the order of the coefficient field
	PowQ(a *Poly, k int) (*Poly, error)

	// GCD returns the monic gcd(a, f)
	GCD(a *Poly) (*Poly, error)
}

// NewModulus returns arithmetic modulo f. Polynomials over GF(2) get a
// bit-packed backend; every other field uses coefficient arithmetic through the
// field package.
func NewModulus(f *Poly) (Modulus, error) {
	if f == nil || f.field == nil {
		return nil, fmt.Errorf("nil modulus: %w", ErrDomainMismatch)
	}
	if f.Degree() < 1 {
		return nil, fmt.Errorf("modulus %s has degree %d", f, f.Degree())
	}
	if isGF2(f.field) {
		return newGF2Modulus(f), nil
	}
	return &genericModulus{f: f, q: f.field.Order()}, nil
}

type genericModulus struct {
	f *Poly
	q *big.Int
}

func (m *genericModulus) Poly() *Poly {
	return m.f
}

func (m *genericModulus) reduce(a *Poly) *Poly {
	_, r := a.divMod(m.f)
	return r
}

func (m *genericModulus) Reduce(a *Poly) (*Poly, error) {
	if err := m.f.compatible(a); err != nil {
		return nil, err
	}
	return m.reduce(a), nil
}

func (m *genericModulus) Mul(a, b *Poly) (*Poly, error) {
	if err := m.f.compatible(a); err != nil {
		return nil, err
	}
	if err := m.f.compatible(b); err != nil {
		return nil, err
	}
	return m.reduce(m.reduce(a).mul(m.reduce(b))), nil
}

func (m *genericModulus) exp(a *Poly, e *big.Int) *Poly {
	base := m.reduce(a)
	result := m.reduce(One(m.f.field))
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = m.reduce(result.mul(result))
		if e.Bit(i) == 1 {
			result = m.reduce(result.mul(base))
		}
	}
	return result
}

func (m *genericModulus) Exp(a *Poly, e *big.Int) (*Poly, error) {
	if err := m.f.compatible(a); err != nil {
		return nil, err
	}
	if e.Sign() < 0 {
		return nil, fmt.Errorf("negative exponent %v", e)
	}
	return m.exp(a, e), nil
}

func (m *genericModulus) PowQ(a *Poly, k int) (*Poly, error) {
	if err := m.f.compatible(a); err != nil {
		return nil, err
	}
	r := m.reduce(a)
	for i := 0; i < k; i++ {
		r = m.exp(r, m.q)
	}
	return r, nil
}

func (m *genericModulus) GCD(a *Poly) (*Poly, error) {
	return m.f.GCD(a)
}
