// Package enumerate lists the monic polynomials of a fixed degree over a finite
// field in a deterministic order.
package enumerate

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/big"
	"math/rand/v2"

	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
)

// ErrFieldTooLarge is returned for fields whose elements cannot be counted in a
// machine word.
var ErrFieldTooLarge = errors.New("field too large to enumerate")

// Order is the order in which candidates are produced
type Order int

const (
	// Lexicographic lists c_0..c_{n-1} in ascending element order with c_0
	// varying fastest, which is the increasing integer representation.
	Lexicographic Order = iota

	// ByTermCount lists candidates grouped by their number of non-zero terms,
	// groups ascending, each group in increasing integer representation.
	ByTermCount

	// Conway lists x^m + sum (-1)^i a_{m-i} x^{m-i} by ascending tuples
	// (a_{m-1}, ..., a_0). Prime fields only.
	Conway
)

func (o Order) String() string {
	switch o {
	case Lexicographic:
		return "lexicographic"
	case ByTermCount:
		return "by-term-count"
	case Conway:
		return "conway"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

const elementCacheLimit = 1 << 12

// Enumerator produces every monic polynomial of one degree exactly once.
// All is restartable and never materialises the candidate space.
type Enumerator struct {
	field   field.Field
	degree  int
	q       uint64
	order   Order
	terms   int
	reverse bool

	elements []field.Element // all elements when q is small
}

// Option is a functional option for the Enumerator
type Option func(*Enumerator) error

// WithOrder selects the candidate order
func WithOrder(o Order) Option {
	return func(e *Enumerator) error {
		if o < Lexicographic || o > Conway {
			return fmt.Errorf("unknown order %d", int(o))
		}
		e.order = o
		return nil
	}
}

// WithTerms restricts enumeration to candidates with exactly t non-zero terms,
// listed in the ByTermCount order
func WithTerms(t int) Option {
	return func(e *Enumerator) error {
		e.terms = t
		return nil
	}
}

// WithReverse lists each group in descending order instead. Term-count groups
// themselves stay ascending.
func WithReverse() Option {
	return func(e *Enumerator) error {
		e.reverse = true
		return nil
	}
}

// New creates an Enumerator of monic polynomials of the given degree over f
func New(f field.Field, degree int, opts ...Option) (*Enumerator, error) {
	if degree < 1 {
		return nil, fmt.Errorf("degree must be at least 1, got %d", degree)
	}
	order := f.Order()
	if !order.IsUint64() || order.Uint64() == math.MaxUint64 {
		return nil, fmt.Errorf("%s: %w", f.Descriptor(), ErrFieldTooLarge)
	}
	e := &Enumerator{field: f, degree: degree, q: order.Uint64()}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.terms != 0 {
		if e.terms < 1 || e.terms > degree+1 {
			return nil, fmt.Errorf("term count %d outside [1, %d]", e.terms, degree+1)
		}
		e.order = ByTermCount
	}
	if e.order == Conway && f.Degree() != 1 {
		return nil, fmt.Errorf("conway order needs a prime field, got %s", f.Descriptor())
	}
	if e.q <= elementCacheLimit {
		for el := range f.Elements() {
			e.elements = append(e.elements, el)
		}
	}
	return e, nil
}

// Degree returns the degree of the candidates
func (e *Enumerator) Degree() int {
	return e.degree
}

// Field returns the coefficient field
func (e *Enumerator) Field() field.Field {
	return e.field
}

func (e *Enumerator) element(v uint64) field.Element {
	if e.elements != nil {
		return e.elements[v]
	}
	return e.field.FromUint64(v)
}

// build turns the digits of c_0..c_{n-1} into a monic polynomial
func (e *Enumerator) build(digits []uint64) *poly.Poly {
	cs := make([]field.Element, e.degree+1)
	for i, d := range digits {
		cs[i] = e.element(d)
	}
	cs[e.degree] = e.field.One()
	p, err := poly.New(e.field, cs)
	if err != nil {
		panic(err)
	}
	return p
}

// All iterates over the candidates in the configured order
func (e *Enumerator) All() iter.Seq[*poly.Poly] {
	switch {
	case e.terms != 0:
		return e.group(e.terms)
	case e.order == ByTermCount:
		return func(yield func(*poly.Poly) bool) {
			for t := 1; t <= e.degree+1; t++ {
				for p := range e.group(t) {
					if !yield(p) {
						return
					}
				}
			}
		}
	case e.order == Conway:
		return e.odometer(e.conwayDigits)
	default:
		return e.odometer(nil)
	}
}

// Group iterates over the candidates with exactly t non-zero terms
func (e *Enumerator) Group(t int) iter.Seq[*poly.Poly] {
	if t < 1 || t > e.degree+1 {
		return func(func(*poly.Poly) bool) {}
	}
	return e.group(t)
}

// odometer runs through all q^n digit vectors with digit 0 varying fastest.
// When mapDigits is set it converts the vector before building.
func (e *Enumerator) odometer(mapDigits func([]uint64) []uint64) iter.Seq[*poly.Poly] {
	return func(yield func(*poly.Poly) bool) {
		first, last := uint64(0), e.q-1
		if e.reverse {
			first, last = last, first
		}
		digits := make([]uint64, e.degree)
		for i := range digits {
			digits[i] = first
		}
		for {
			out := digits
			if mapDigits != nil {
				out = mapDigits(digits)
			}
			if !yield(e.build(out)) {
				return
			}
			i := 0
			for ; i < e.degree && digits[i] == last; i++ {
				digits[i] = first
			}
			if i == e.degree {
				return
			}
			if e.reverse {
				digits[i]--
			} else {
				digits[i]++
			}
		}
	}
}

// conwayDigits maps (a_0, ..., a_{m-1}) to the coefficients
// c_j = (-1)^(m-j) a_j mod p
func (e *Enumerator) conwayDigits(a []uint64) []uint64 {
	c := make([]uint64, len(a))
	for j, v := range a {
		if (e.degree-j)%2 == 1 && v != 0 {
			c[j] = e.q - v
		} else {
			c[j] = v
		}
	}
	return c
}

// group lists the candidates with t non-zero terms. The leading term is always
// present, so t-1 of the lower n coefficients are non-zero. Digits are chosen
// from the top index down which yields increasing integer representation.
func (e *Enumerator) group(t int) iter.Seq[*poly.Poly] {
	return func(yield func(*poly.Poly) bool) {
		digits := make([]uint64, e.degree)
		var rec func(i, need int) bool
		rec = func(i, need int) bool {
			if need == 0 {
				for j := 0; j <= i; j++ {
					digits[j] = 0
				}
				return yield(e.build(digits))
			}
			if i < 0 {
				return true
			}
			zero := func() bool {
				if i < need {
					return true
				}
				digits[i] = 0
				return rec(i-1, need)
			}
			nonzero := func() bool {
				for k := uint64(1); k < e.q; k++ {
					v := k
					if e.reverse {
						v = e.q - k
					}
					digits[i] = v
					if !rec(i-1, need-1) {
						return false
					}
				}
				return true
			}
			if e.reverse {
				return nonzero() && zero()
			}
			return zero() && nonzero()
		}
		rec(e.degree-1, t-1)
	}
}

// Count returns the number of candidates All produces
func (e *Enumerator) Count() *big.Int {
	if e.terms != 0 {
		return e.GroupCount(e.terms)
	}
	return new(big.Int).Exp(new(big.Int).SetUint64(e.q), big.NewInt(int64(e.degree)), nil)
}

// GroupCount returns C(n, t-1) (q-1)^(t-1), the size of group t
func (e *Enumerator) GroupCount(t int) *big.Int {
	if t < 1 || t > e.degree+1 {
		return new(big.Int)
	}
	c := new(big.Int).Binomial(int64(e.degree), int64(t-1))
	qm1 := new(big.Int).SetUint64(e.q - 1)
	return c.Mul(c, qm1.Exp(qm1, big.NewInt(int64(t-1)), nil))
}

// Random returns a uniformly random candidate, restricted to the configured
// term count when one is set
func (e *Enumerator) Random() *poly.Poly {
	digits := make([]uint64, e.degree)
	if e.terms == 0 {
		for i := range digits {
			digits[i] = rand.Uint64N(e.q)
		}
		return e.build(digits)
	}
	for _, i := range rand.Perm(e.degree)[:e.terms-1] {
		digits[i] = 1 + rand.Uint64N(e.q-1)
	}
	return e.build(digits)
}
