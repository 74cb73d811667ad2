// Package database looks up Conway polynomials and minimal-term irreducible
// polynomials over GF(2) in reference tables, and searches for them when a
// table has no entry.
package database

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ppopth/gfpoly/cache"
	"github.com/ppopth/gfpoly/enumerate"
	"github.com/ppopth/gfpoly/factor"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
	"github.com/ppopth/gfpoly/search"
	"github.com/ppopth/gfpoly/tester"
)

var log = logging.Logger("database")

// ErrOutOfDatabaseScope is returned for requests the reference tables do not
// cover when searching is not allowed
var ErrOutOfDatabaseScope = errors.New("outside the reference database")

// MinimalTermScope is the first degree the minimal-term table does not cover
const MinimalTermScope = 10000

// Oracle answers reference queries from the tables, falling back to verified
// searches where allowed. Searched Conway polynomials are remembered.
type Oracle struct {
	engine *search.Engine
	files  []string

	once   sync.Once
	db     *Database
	dbErr  error
	fields sync.Map // uint64 -> *field.PrimeField

	group    singleflight.Group
	searched sync.Map // conwayKey -> *poly.Poly
}

// Option is a functional option for the Oracle
type Option func(*Oracle) error

// WithDatabaseFile merges a protobuf database file over the embedded tables.
// Later files override earlier entries.
func WithDatabaseFile(path string) Option {
	return func(o *Oracle) error {
		if path == "" {
			return fmt.Errorf("empty database path")
		}
		o.files = append(o.files, path)
		return nil
	}
}

// New creates an Oracle searching with engine. The tables are loaded on first
// use.
func New(engine *search.Engine, opts ...Option) (*Oracle, error) {
	if engine == nil {
		return nil, fmt.Errorf("nil search engine")
	}
	o := &Oracle{engine: engine}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Oracle) tables() (*Database, error) {
	o.once.Do(func() {
		o.db, o.dbErr = loadTables(o.files)
	})
	return o.db, o.dbErr
}

// Database returns the loaded reference tables
func (o *Oracle) Database() (*Database, error) {
	return o.tables()
}

func (o *Oracle) primeField(p uint64) (*field.PrimeField, error) {
	if v, ok := o.fields.Load(p); ok {
		return v.(*field.PrimeField), nil
	}
	f, err := field.NewPrimeField(new(big.Int).SetUint64(p))
	if err != nil {
		return nil, err
	}
	v, _ := o.fields.LoadOrStore(p, f)
	return v.(*field.PrimeField), nil
}

// LookupConway returns the tabled Conway polynomial C(p, m)
func (o *Oracle) LookupConway(p uint64, m int) (*poly.Poly, bool) {
	db, err := o.tables()
	if err != nil {
		log.Errorf("reference tables unavailable: %s", err)
		return nil, false
	}
	coeffs, ok := db.conway[conwayKey{p, m}]
	if !ok {
		return nil, false
	}
	f, err := o.primeField(p)
	if err != nil {
		return nil, false
	}
	return poly.FromUint64s(f, coeffs...), true
}

// Conway returns the Conway polynomial C(p, m). Without a table entry it
// searches when allowSearch is set and returns ErrOutOfDatabaseScope otherwise.
func (o *Oracle) Conway(ctx context.Context, p uint64, m int, allowSearch bool) (*poly.Poly, error) {
	if m < 1 {
		return nil, fmt.Errorf("degree %d: %w", m, tester.ErrInvalidDegree)
	}
	if _, err := o.primeField(p); err != nil {
		return nil, fmt.Errorf("GF(%d): %w", p, tester.ErrDomainMismatch)
	}
	if _, err := o.tables(); err != nil {
		return nil, err
	}
	if c, ok := o.LookupConway(p, m); ok {
		return c, nil
	}
	k := conwayKey{p, m}
	if v, ok := o.searched.Load(k); ok {
		return v.(*poly.Poly), nil
	}
	if !allowSearch {
		return nil, fmt.Errorf("Conway polynomial C(%d, %d): %w", p, m, ErrOutOfDatabaseScope)
	}

	v, err, _ := o.group.Do(fmt.Sprintf("%d/%d", p, m), func() (interface{}, error) {
		if v, ok := o.searched.Load(k); ok {
			return v, nil
		}
		c, err := o.conwaySearch(ctx, p, m)
		if err != nil {
			return nil, err
		}
		o.searched.Store(k, c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*poly.Poly), nil
}

// subfieldConway returns C(p, d) for every proper divisor d of m
func (o *Oracle) subfieldConway(ctx context.Context, p uint64, m int, allowSearch bool) (map[int]*poly.Poly, error) {
	out := make(map[int]*poly.Poly)
	for _, d := range factor.Divisors(m) {
		if d == m {
			continue
		}
		c, err := o.Conway(ctx, p, d, allowSearch)
		if err != nil {
			return nil, err
		}
		out[d] = c
	}
	return out, nil
}

// conwaySearch scans the Conway order for the first primitive polynomial
// consistent with the Conway polynomials of all subfields
func (o *Oracle) conwaySearch(ctx context.Context, p uint64, m int) (*poly.Poly, error) {
	subfields, err := o.subfieldConway(ctx, p, m, true)
	if err != nil {
		return nil, err
	}
	f, err := o.primeField(p)
	if err != nil {
		return nil, err
	}
	en, err := enumerate.New(f, m, enumerate.WithOrder(enumerate.Conway))
	if err != nil {
		return nil, err
	}
	log.Debugf("searching Conway polynomial C(%d, %d)", p, m)

	t := o.engine.Tester()
	var found *poly.Poly
	err = o.engine.Find(ctx, en.All(), func(ctx context.Context, c *poly.Poly) (bool, error) {
		ok, err := t.Check(ctx, c, tester.Primitive)
		if err != nil || !ok {
			return false, err
		}
		return consistent(c, subfields)
	}, func(c *poly.Poly) bool {
		found = c
		return false
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("Conway polynomial C(%d, %d): %w", p, m, search.ErrNotFound)
	}
	log.Infof("found Conway polynomial C(%d, %d) = %s", p, m, found)
	return found, nil
}

// consistent checks C_d(x^((p^m-1)/(p^d-1))) = 0 mod f for every subfield
// polynomial C_d
func consistent(f *poly.Poly, subfields map[int]*poly.Poly) (bool, error) {
	m := f.Degree()
	p := f.Field().Order()
	mod, err := poly.NewModulus(f)
	if err != nil {
		return false, err
	}
	x := poly.X(f.Field())
	for d, c := range subfields {
		h, err := mod.Exp(x, normExponent(p, m, d))
		if err != nil {
			return false, err
		}
		r, err := poly.ComposeMod(c, h, f)
		if err != nil {
			return false, err
		}
		if !r.IsZero() {
			return false, nil
		}
	}
	return true, nil
}

// normExponent returns (p^m - 1) / (p^d - 1)
func normExponent(p *big.Int, m, d int) *big.Int {
	one := big.NewInt(1)
	num := new(big.Int).Exp(p, big.NewInt(int64(m)), nil)
	den := new(big.Int).Exp(p, big.NewInt(int64(d)), nil)
	return num.Quo(num.Sub(num, one), den.Sub(den, one))
}

func conwayField(f *poly.Poly) (uint64, error) {
	if f == nil || f.Field() == nil {
		return 0, fmt.Errorf("polynomial without field: %w", tester.ErrDomainMismatch)
	}
	d := f.Field().Descriptor()
	p := f.Field().Characteristic()
	if d.Degree != 1 || !p.IsUint64() {
		return 0, fmt.Errorf("Conway polynomials are defined over small prime fields, not %s: %w", d, tester.ErrDomainMismatch)
	}
	if f.Degree() < 1 {
		return 0, fmt.Errorf("%s: %w", f, tester.ErrInvalidDegree)
	}
	return p.Uint64(), nil
}

// IsConwayConsistent reports whether f is monic, primitive, and restricts to
// the Conway polynomial of every proper subfield. Subfield polynomials missing
// from the tables are searched for when allowSearch is set.
func (o *Oracle) IsConwayConsistent(ctx context.Context, f *poly.Poly, allowSearch bool) (bool, error) {
	p, err := conwayField(f)
	if err != nil {
		return false, err
	}
	if !f.IsMonic() {
		return false, nil
	}
	t := o.engine.Tester()
	return t.Memo(ctx, f, cache.ConwayConsistent, func(ctx context.Context) (bool, error) {
		ok, err := t.Check(ctx, f, tester.Primitive)
		if err != nil || !ok {
			return false, err
		}
		subfields, err := o.subfieldConway(ctx, p, f.Degree(), allowSearch)
		if err != nil {
			return false, err
		}
		return consistent(f, subfields)
	})
}

// IsConway reports whether f is the Conway polynomial C(p, m): consistent and
// first in the Conway order among the consistent primitive polynomials
func (o *Oracle) IsConway(ctx context.Context, f *poly.Poly, allowSearch bool) (bool, error) {
	p, err := conwayField(f)
	if err != nil {
		return false, err
	}
	if c, ok := o.LookupConway(p, f.Degree()); ok {
		return c.Equal(f), nil
	}
	ok, err := o.IsConwayConsistent(ctx, f, allowSearch)
	if err != nil || !ok {
		return false, err
	}
	c, err := o.Conway(ctx, p, f.Degree(), allowSearch)
	if err != nil {
		return false, err
	}
	return c.Equal(f), nil
}

// Restrict returns the minimal polynomial over GF(p) of x^((p^m-1)/(p^d-1))
// modulo f, the image of x in the subfield GF(p^d) of GF(p)[x]/(f). f must be
// irreducible of degree m over GF(p) and d must divide m.
func Restrict(f *poly.Poly, d int) (*poly.Poly, error) {
	if _, err := conwayField(f); err != nil {
		return nil, err
	}
	m := f.Degree()
	if d < 1 || m%d != 0 {
		return nil, fmt.Errorf("subfield degree %d does not divide %d", d, m)
	}
	F := f.Field()
	mod, err := poly.NewModulus(f)
	if err != nil {
		return nil, err
	}
	alpha, err := mod.Exp(poly.X(F), normExponent(F.Order(), m, d))
	if err != nil {
		return nil, err
	}

	vector := func(a *poly.Poly) []field.Element {
		v := make([]field.Element, m)
		for i := range v {
			v[i] = a.Coeff(i)
		}
		return v
	}
	// columns hold alpha^0 .. alpha^(k-1)
	powers := [][]field.Element{vector(poly.One(F))}
	power := poly.One(F)
	for k := 1; k <= d; k++ {
		if power, err = mod.Mul(power, alpha); err != nil {
			return nil, err
		}
		A := make([][]field.Element, m)
		for r := range A {
			A[r] = make([]field.Element, k)
			for j := 0; j < k; j++ {
				A[r][j] = powers[j][r]
			}
		}
		v := vector(power)
		if field.IsLinearlyIndependent(append(powers[:k:k], v)) {
			powers = append(powers, v)
			continue
		}
		sol, err := field.Solve(A, v, F)
		if err != nil {
			return nil, err
		}
		// alpha^k = sum sol_j alpha^j
		coeffs := make([]field.Element, k+1)
		for j, s := range sol {
			coeffs[j] = s.Neg()
		}
		coeffs[k] = F.One()
		return poly.New(F, coeffs)
	}
	return nil, fmt.Errorf("%s is not irreducible", f)
}

// LookupMinimalTermIrreducible returns the tabled lexicographically first
// irreducible polynomial over GF(2) with the fewest non-zero terms
func (o *Oracle) LookupMinimalTermIrreducible(degree int) (*poly.Poly, bool) {
	db, err := o.tables()
	if err != nil {
		log.Errorf("reference tables unavailable: %s", err)
		return nil, false
	}
	exps, ok := db.minimalTerm[degree]
	if !ok {
		return nil, false
	}
	f, err := o.primeField(2)
	if err != nil {
		return nil, false
	}
	p, err := poly.FromDegrees(f, exps, nil)
	if err != nil {
		return nil, false
	}
	return p, true
}

// MinimalTermIrreducible returns the lexicographically first irreducible
// polynomial over GF(2) of the degree with the fewest non-zero terms. Degrees
// inside the table scope without an entry are searched for; degrees beyond it
// return ErrOutOfDatabaseScope.
func (o *Oracle) MinimalTermIrreducible(ctx context.Context, degree int) (*poly.Poly, error) {
	if degree < 1 {
		return nil, fmt.Errorf("degree %d: %w", degree, tester.ErrInvalidDegree)
	}
	if _, err := o.tables(); err != nil {
		return nil, err
	}
	if p, ok := o.LookupMinimalTermIrreducible(degree); ok {
		return p, nil
	}
	if degree >= MinimalTermScope {
		return nil, fmt.Errorf("minimal-term irreducible of degree %d: %w", degree, ErrOutOfDatabaseScope)
	}
	log.Debugf("no minimal-term entry for degree %d, searching", degree)
	f, err := o.primeField(2)
	if err != nil {
		return nil, err
	}
	return o.engine.First(ctx, search.Request{
		Field:    f,
		Degree:   degree,
		Property: tester.Irreducible,
		Terms:    search.MinTerms,
	})
}
