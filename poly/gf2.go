package poly

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/ppopth/gfpoly/field"
)

// Packed GF(2)[x] arithmetic: bit i of the word slice is the coefficient of
// x^i. Residues modulo f of degree n are kept in exactly (n+63)/64 words.

// spreadTable maps a byte to the 16-bit value with its bits at even positions,
// which is the square of the byte as a GF(2) polynomial
var spreadTable = func() (t [256]uint16) {
	for v := range t {
		for b := 0; b < 8; b++ {
			if v>>b&1 == 1 {
				t[v] |= 1 << (2 * b)
			}
		}
	}
	return t
}()

func isGF2(f field.Field) bool {
	return f.Order().Cmp(big.NewInt(2)) == 0
}

type gf2Modulus struct {
	f     *Poly
	n     int
	words int
	fw    []uint64
	low   []int // exponents of the non-zero terms of f below n
}

func newGF2Modulus(f *Poly) *gf2Modulus {
	m := &gf2Modulus{
		f:     f,
		n:     f.Degree(),
		words: (f.Degree() + 63) / 64,
		fw:    pack(f),
	}
	for i := 0; i < m.n; i++ {
		if !f.coeffs[i].IsZero() {
			m.low = append(m.low, i)
		}
	}
	return m
}

func pack(a *Poly) []uint64 {
	w := make([]uint64, (len(a.coeffs)+63)/64)
	for i, c := range a.coeffs {
		if !c.IsZero() {
			w[i>>6] |= 1 << (uint(i) & 63)
		}
	}
	return w
}

func (m *gf2Modulus) unpack(w []uint64) *Poly {
	f := m.f.field
	zero, one := f.Zero(), f.One()
	cs := make([]field.Element, degree(w)+1)
	for i := range cs {
		if bit(w, i) {
			cs[i] = one
		} else {
			cs[i] = zero
		}
	}
	return &Poly{field: f, coeffs: cs}
}

func bit(w []uint64, i int) bool {
	return w[i>>6]>>(uint(i)&63)&1 == 1
}

// degree returns the index of the highest set bit, -1 when w is zero
func degree(w []uint64) int {
	for i := len(w) - 1; i >= 0; i-- {
		if w[i] != 0 {
			return i*64 + 63 - bits.LeadingZeros64(w[i])
		}
	}
	return -1
}

// xorShifted sets dst ^= src << s. Bits shifted past the end of dst must be
// zero.
func xorShifted(dst, src []uint64, s int) {
	ws, bs := s>>6, uint(s)&63
	for i, w := range src {
		if w == 0 {
			continue
		}
		dst[i+ws] ^= w << bs
		if bs != 0 && i+ws+1 < len(dst) {
			dst[i+ws+1] ^= w >> (64 - bs)
		}
	}
}

// reduce reduces a in place and returns the residue in a fresh slice
func (m *gf2Modulus) reduce(a []uint64) []uint64 {
	if len(m.low) <= m.words {
		// sparse modulus: clear each high bit by flipping the few low terms
		for i := degree(a); i >= m.n; i-- {
			if !bit(a, i) {
				continue
			}
			a[i>>6] &^= 1 << (uint(i) & 63)
			s := i - m.n
			for _, e := range m.low {
				j := s + e
				a[j>>6] ^= 1 << (uint(j) & 63)
			}
		}
	} else {
		for i := degree(a); i >= m.n; i = degree(a) {
			xorShifted(a, m.fw, i-m.n)
		}
	}
	r := make([]uint64, m.words)
	copy(r, a)
	return r
}

func (m *gf2Modulus) square(a []uint64) []uint64 {
	prod := make([]uint64, 2*len(a))
	for i, w := range a {
		prod[2*i] = spread(uint32(w))
		prod[2*i+1] = spread(uint32(w >> 32))
	}
	return m.reduce(prod)
}

func spread(x uint32) uint64 {
	return uint64(spreadTable[x&0xff]) |
		uint64(spreadTable[x>>8&0xff])<<16 |
		uint64(spreadTable[x>>16&0xff])<<32 |
		uint64(spreadTable[x>>24])<<48
}

func (m *gf2Modulus) mul(a, b []uint64) []uint64 {
	prod := make([]uint64, len(a)+len(b)+1)
	for i := degree(b); i >= 0; i-- {
		if bit(b, i) {
			xorShifted(prod, a, i)
		}
	}
	return m.reduce(prod)
}

func (m *gf2Modulus) residue(a *Poly) ([]uint64, error) {
	if err := m.f.compatible(a); err != nil {
		return nil, err
	}
	return m.reduce(pack(a)), nil
}

func (m *gf2Modulus) Poly() *Poly {
	return m.f
}

func (m *gf2Modulus) Reduce(a *Poly) (*Poly, error) {
	r, err := m.residue(a)
	if err != nil {
		return nil, err
	}
	return m.unpack(r), nil
}

func (m *gf2Modulus) Mul(a, b *Poly) (*Poly, error) {
	ra, err := m.residue(a)
	if err != nil {
		return nil, err
	}
	rb, err := m.residue(b)
	if err != nil {
		return nil, err
	}
	return m.unpack(m.mul(ra, rb)), nil
}

func (m *gf2Modulus) Exp(a *Poly, e *big.Int) (*Poly, error) {
	if e.Sign() < 0 {
		return nil, fmt.Errorf("negative exponent %v", e)
	}
	base, err := m.residue(a)
	if err != nil {
		return nil, err
	}
	result := m.reduce([]uint64{1})
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = m.square(result)
		if e.Bit(i) == 1 {
			result = m.mul(result, base)
		}
	}
	return m.unpack(result), nil
}

func (m *gf2Modulus) PowQ(a *Poly, k int) (*Poly, error) {
	r, err := m.residue(a)
	if err != nil {
		return nil, err
	}
	for i := 0; i < k; i++ {
		r = m.square(r)
	}
	return m.unpack(r), nil
}

func (m *gf2Modulus) GCD(a *Poly) (*Poly, error) {
	r, err := m.residue(a)
	if err != nil {
		return nil, err
	}
	g := append([]uint64(nil), m.fw...)
	for degree(r) >= 0 {
		dr := degree(r)
		for dg := degree(g); dg >= dr; dg = degree(g) {
			xorShifted(g, r, dg-dr)
		}
		g, r = r, g
	}
	return m.unpack(g), nil
}
