// Package tester decides irreducibility and primitivity of polynomials over
// finite fields.
package tester

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly/cache"
	"github.com/ppopth/gfpoly/factor"
	"github.com/ppopth/gfpoly/poly"
)

var log = logging.Logger("tester")

var (
	// ErrInvalidDegree is returned for zero and constant polynomials
	ErrInvalidDegree = errors.New("polynomial degree must be at least 1")

	// ErrNotIrreducible is returned when primitivity is asked of a reducible
	// polynomial
	ErrNotIrreducible = errors.New("polynomial is not irreducible")

	// ErrDomainMismatch is returned for polynomials without a usable field
	ErrDomainMismatch = poly.ErrDomainMismatch
)

// Property is a polynomial property that can be searched for and cached
type Property = cache.Property

const (
	Irreducible = cache.Irreducible
	Primitive   = cache.Primitive
)

// Tester runs property tests and memoises their outcomes in a shared cache
type Tester struct {
	cache      *cache.Cache
	factorizer *factor.Factorizer
}

// Option is a functional option for the Tester
type Option func(*Tester) error

// WithCache sets the result cache
func WithCache(c *cache.Cache) Option {
	return func(t *Tester) error {
		if c == nil {
			return fmt.Errorf("nil cache")
		}
		t.cache = c
		return nil
	}
}

// WithFactorizer sets the group order factorizer
func WithFactorizer(f *factor.Factorizer) Option {
	return func(t *Tester) error {
		if f == nil {
			return fmt.Errorf("nil factorizer")
		}
		t.factorizer = f
		return nil
	}
}

// New creates a Tester. Without options it owns a fresh unbounded cache and a
// factorizer without effort bound.
func New(opts ...Option) (*Tester, error) {
	t := &Tester{}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.cache == nil {
		c, err := cache.New()
		if err != nil {
			return nil, err
		}
		t.cache = c
	}
	if t.factorizer == nil {
		f, err := factor.New()
		if err != nil {
			return nil, err
		}
		t.factorizer = f
	}
	return t, nil
}

// Cache returns the result cache
func (t *Tester) Cache() *cache.Cache {
	return t.cache
}

// Factorizer returns the group order factorizer
func (t *Tester) Factorizer() *factor.Factorizer {
	return t.factorizer
}

func validate(f *poly.Poly) error {
	if f == nil || f.Field() == nil {
		return fmt.Errorf("polynomial without field: %w", ErrDomainMismatch)
	}
	if f.Degree() < 1 {
		return fmt.Errorf("%s has degree %d: %w", f, f.Degree(), ErrInvalidDegree)
	}
	return nil
}

// Memo returns the cached outcome of property for f, running compute once when
// it is unknown. compute gets a context shared by every caller waiting for it.
func (t *Tester) Memo(ctx context.Context, f *poly.Poly, property Property, compute func(context.Context) (bool, error)) (bool, error) {
	return t.cache.GetOrCompute(ctx, f.Key(), property, compute)
}

// IsIrreducible reports whether f is irreducible over its field
func (t *Tester) IsIrreducible(f *poly.Poly) (bool, error) {
	if err := validate(f); err != nil {
		return false, err
	}
	n := f.Degree()
	if n == 1 {
		return true, nil
	}
	if f.Coeff(0).IsZero() {
		return false, nil
	}
	if hasRoot(f) {
		return false, nil
	}
	return t.Memo(context.Background(), f, Irreducible, func(context.Context) (bool, error) {
		return rabin(f)
	})
}

// hasRoot looks for a root in the coefficient field. It only runs when the
// field is small against the degree, q*n <= n^3.
func hasRoot(f *poly.Poly) bool {
	n := int64(f.Degree())
	q := f.Field().Order()
	if new(big.Int).Mul(q, big.NewInt(n)).Cmp(big.NewInt(n*n*n)) > 0 {
		return false
	}
	for c := range f.Field().Elements() {
		if f.Evaluate(c).IsZero() {
			return true
		}
	}
	return false
}

// rabin runs Rabin's test: f of degree n is irreducible iff x^(q^n) = x mod f
// and gcd(x^(q^(n/r)) - x, f) = 1 for every prime r dividing n
func rabin(f *poly.Poly) (bool, error) {
	n := f.Degree()
	m, err := poly.NewModulus(f)
	if err != nil {
		return false, err
	}
	x := poly.X(f.Field())

	primes := factor.PrimeDivisors(n)
	steps := make([]int, 0, len(primes)+1)
	for i := len(primes) - 1; i >= 0; i-- {
		steps = append(steps, n/primes[i])
	}

	h, at := x, 0
	for _, k := range steps {
		if h, err = m.PowQ(h, k-at); err != nil {
			return false, err
		}
		at = k
		d, err := h.Sub(x)
		if err != nil {
			return false, err
		}
		g, err := m.GCD(d)
		if err != nil {
			return false, err
		}
		if !g.IsOne() {
			return false, nil
		}
	}
	if h, err = m.PowQ(h, n-at); err != nil {
		return false, err
	}
	return h.Equal(x), nil
}

// IsPrimitive reports whether f is primitive: irreducible with x generating the
// multiplicative group of F[x]/(f). A deadline on ctx bounds the wait for the
// factorization of the group order and returns factor.ErrFactorizationTimeout
// when it passes; plain cancellation returns ctx.Err(). Concurrent callers
// testing the same f share one computation that outlives any one of them.
func (t *Tester) IsPrimitive(ctx context.Context, f *poly.Poly) (bool, error) {
	irreducible, err := t.IsIrreducible(f)
	if err != nil {
		return false, err
	}
	if !irreducible {
		return false, fmt.Errorf("%s: %w", f, ErrNotIrreducible)
	}
	if f.Coeff(0).IsZero() {
		return false, nil
	}
	ok, err := t.Memo(ctx, f, Primitive, func(ctx context.Context) (bool, error) {
		return t.primitive(ctx, f)
	})
	if err != nil && ctx.Err() != nil {
		return false, interrupted(ctx, f)
	}
	return ok, err
}

// interrupted is the error of a test given up through ctx. Only a deadline
// makes it a bounded-effort timeout.
func interrupted(ctx context.Context, f *poly.Poly) error {
	if _, bounded := ctx.Deadline(); bounded {
		return fmt.Errorf("%s: %w: %w", f, factor.ErrFactorizationTimeout, ctx.Err())
	}
	return fmt.Errorf("%s: %w", f, ctx.Err())
}

func (t *Tester) primitive(ctx context.Context, f *poly.Poly) (bool, error) {
	q := f.Field().Order()
	n := f.Degree()
	order, err := t.factorizer.GroupOrder(ctx, q, n)
	if err != nil {
		return false, err
	}
	log.Debugf("order of %s^%d - 1 factors as %s", q, n, order)

	m, err := poly.NewModulus(f)
	if err != nil {
		return false, err
	}
	x := poly.X(f.Field())
	N := order.Product()
	for _, r := range order.Primes() {
		y, err := m.Exp(x, new(big.Int).Quo(N, r))
		if err != nil {
			return false, err
		}
		if y.IsOne() {
			return false, nil
		}
	}
	return true, nil
}

// Check tests f for a search property. A reducible candidate is simply not
// primitive.
func (t *Tester) Check(ctx context.Context, f *poly.Poly, property Property) (bool, error) {
	switch property {
	case Irreducible:
		return t.IsIrreducible(f)
	case Primitive:
		ok, err := t.IsPrimitive(ctx, f)
		if errors.Is(err, ErrNotIrreducible) {
			return false, nil
		}
		return ok, err
	default:
		return false, fmt.Errorf("unsupported search property %s", property)
	}
}
