// Package gfpoly finds and tests irreducible, primitive and Conway polynomials
// over finite fields.
//
// A Service wires the result cache, the group order factorizer, the property
// testers, the search engine and the reference database together:
//
//	s, err := gfpoly.New()
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	f, err := s.IrreduciblePoly(ctx, field.MustPrimeField(7), 9)
package gfpoly

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/big"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ppopth/gfpoly/cache"
	"github.com/ppopth/gfpoly/database"
	"github.com/ppopth/gfpoly/factor"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/poly"
	"github.com/ppopth/gfpoly/search"
	"github.com/ppopth/gfpoly/tester"
)

var log = logging.Logger("gfpoly")

var (
	ErrInvalidDegree        = tester.ErrInvalidDegree
	ErrDomainMismatch       = tester.ErrDomainMismatch
	ErrNotIrreducible       = tester.ErrNotIrreducible
	ErrNotFound             = search.ErrNotFound
	ErrInvalidTerms         = search.ErrInvalidTerms
	ErrOutOfDatabaseScope   = database.ErrOutOfDatabaseScope
	ErrFactorizationTimeout = factor.ErrFactorizationTimeout
)

// Service answers polynomial queries. It is safe for concurrent use.
type Service struct {
	cache      *cache.Cache
	ownCache   bool
	factorizer *factor.Factorizer
	tester     *tester.Tester
	engine     *search.Engine
	oracle     *database.Oracle

	workers      int
	files        []string
	factorBudget time.Duration
}

// Option is a functional option for the Service
type Option func(*Service) error

// WithCache shares a result cache. The Service does not close it.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) error {
		if c == nil {
			return fmt.Errorf("nil cache")
		}
		s.cache = c
		return nil
	}
}

// WithWorkers sets the number of candidates tested in parallel by searches
func WithWorkers(n int) Option {
	return func(s *Service) error {
		if n < 1 {
			return fmt.Errorf("number of workers must be positive, got %d", n)
		}
		s.workers = n
		return nil
	}
}

// WithDatabaseFile merges a database file written by gendb over the embedded
// reference tables
func WithDatabaseFile(path string) Option {
	return func(s *Service) error {
		s.files = append(s.files, path)
		return nil
	}
}

// WithFactorBudget bounds every group order factorization. Primitivity tests
// that exceed it fail with ErrFactorizationTimeout.
func WithFactorBudget(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return fmt.Errorf("factorization budget must be positive, got %v", d)
		}
		s.factorBudget = d
		return nil
	}
}

// New creates a Service
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	var err error
	if s.cache == nil {
		if s.cache, err = cache.New(); err != nil {
			return nil, err
		}
		s.ownCache = true
	}
	var factorOpts []factor.Option
	if s.factorBudget > 0 {
		factorOpts = append(factorOpts, factor.WithBudget(s.factorBudget))
	}
	if s.factorizer, err = factor.New(factorOpts...); err != nil {
		return nil, s.closeOnError(err)
	}
	if s.tester, err = tester.New(tester.WithCache(s.cache), tester.WithFactorizer(s.factorizer)); err != nil {
		return nil, s.closeOnError(err)
	}
	var engineOpts []search.Option
	if s.workers > 0 {
		engineOpts = append(engineOpts, search.WithWorkers(s.workers))
	}
	if s.engine, err = search.New(s.tester, engineOpts...); err != nil {
		return nil, s.closeOnError(err)
	}
	var oracleOpts []database.Option
	for _, path := range s.files {
		oracleOpts = append(oracleOpts, database.WithDatabaseFile(path))
	}
	if s.oracle, err = database.New(s.engine, oracleOpts...); err != nil {
		return nil, s.closeOnError(err)
	}
	return s, nil
}

func (s *Service) closeOnError(err error) error {
	s.Close()
	return err
}

// Close stops the background work of an owned cache
func (s *Service) Close() error {
	if s.ownCache && s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// Cache returns the result cache
func (s *Service) Cache() *cache.Cache { return s.cache }

// Engine returns the search engine
func (s *Service) Engine() *search.Engine { return s.engine }

// Oracle returns the reference database oracle
func (s *Service) Oracle() *database.Oracle { return s.oracle }

type query struct {
	terms      int
	reverse    bool
	random     bool
	noDatabase bool
}

// QueryOption configures a single search query
type QueryOption func(*query) error

// Terms requests exactly t non-zero terms
func Terms(t int) QueryOption {
	return func(q *query) error {
		if t < 1 {
			return fmt.Errorf("%d terms: %w", t, ErrInvalidTerms)
		}
		q.terms = t
		return nil
	}
}

// MinTerms requests the fewest possible non-zero terms
func MinTerms() QueryOption {
	return func(q *query) error {
		q.terms = search.MinTerms
		return nil
	}
}

// Reverse returns the lexicographically last candidates first
func Reverse() QueryOption {
	return func(q *query) error {
		q.reverse = true
		return nil
	}
}

// Random returns a random polynomial instead of the first one
func Random() QueryOption {
	return func(q *query) error {
		q.random = true
		return nil
	}
}

// WithoutDatabase skips the reference tables and always searches
func WithoutDatabase() QueryOption {
	return func(q *query) error {
		q.noDatabase = true
		return nil
	}
}

func newQuery(opts []QueryOption) (*query, error) {
	q := &query{}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	if q.random && q.reverse {
		return nil, fmt.Errorf("random and reverse queries are exclusive")
	}
	return q, nil
}

func (q *query) request(f field.Field, degree int, property tester.Property) search.Request {
	return search.Request{
		Field:    f,
		Degree:   degree,
		Property: property,
		Terms:    q.terms,
		Reverse:  q.reverse,
	}
}

func isGF2(f field.Field) bool {
	return f != nil && f.Descriptor() == field.Descriptor{Characteristic: "2", Degree: 1}
}

func (s *Service) first(ctx context.Context, f field.Field, degree int, property tester.Property, opts []QueryOption) (*poly.Poly, error) {
	q, err := newQuery(opts)
	if err != nil {
		return nil, err
	}
	req := q.request(f, degree, property)
	if q.random {
		return s.engine.Random(ctx, req)
	}
	if property == tester.Irreducible && q.terms == search.MinTerms && !q.reverse && !q.noDatabase && isGF2(f) && degree >= 1 {
		return s.oracle.MinimalTermIrreducible(ctx, degree)
	}
	return s.engine.First(ctx, req)
}

func (s *Service) all(ctx context.Context, f field.Field, degree int, property tester.Property, opts []QueryOption) iter.Seq2[*poly.Poly, error] {
	q, err := newQuery(opts)
	if err == nil && q.random {
		err = fmt.Errorf("random queries return a single polynomial")
	}
	if err != nil {
		return func(yield func(*poly.Poly, error) bool) {
			yield(nil, err)
		}
	}
	return s.engine.All(ctx, q.request(f, degree, property))
}

// IrreduciblePoly returns the lexicographically first monic irreducible
// polynomial of the degree over f. Over GF(2) the fewest-terms query is answered
// from the reference table, which reports ErrOutOfDatabaseScope for degrees
// beyond it unless WithoutDatabase is given.
func (s *Service) IrreduciblePoly(ctx context.Context, f field.Field, degree int, opts ...QueryOption) (*poly.Poly, error) {
	return s.first(ctx, f, degree, tester.Irreducible, opts)
}

// IrreduciblePolys iterates over the monic irreducible polynomials of the degree
func (s *Service) IrreduciblePolys(ctx context.Context, f field.Field, degree int, opts ...QueryOption) iter.Seq2[*poly.Poly, error] {
	return s.all(ctx, f, degree, tester.Irreducible, opts)
}

// PrimitivePoly returns the lexicographically first monic primitive polynomial
// of the degree over f
func (s *Service) PrimitivePoly(ctx context.Context, f field.Field, degree int, opts ...QueryOption) (*poly.Poly, error) {
	return s.first(ctx, f, degree, tester.Primitive, opts)
}

// PrimitivePolys iterates over the monic primitive polynomials of the degree
func (s *Service) PrimitivePolys(ctx context.Context, f field.Field, degree int, opts ...QueryOption) iter.Seq2[*poly.Poly, error] {
	return s.all(ctx, f, degree, tester.Primitive, opts)
}

// ConwayPoly returns the Conway polynomial C(p, m), searching for it when the
// reference table has no entry and search is set
func (s *Service) ConwayPoly(ctx context.Context, p uint64, m int, search bool) (*poly.Poly, error) {
	return s.oracle.Conway(ctx, p, m, search)
}

// matlabExceptions are the GF(2) defaults of Matlab's gfprimdf that are not the
// first fewest-terms primitive polynomial
var matlabExceptions = map[int][]int{
	7:  {7, 3, 0},
	14: {14, 10, 6, 1, 0},
	16: {16, 12, 3, 1, 0},
}

// MatlabPrimitivePoly returns the default primitive polynomial of Matlab's
// gfprimdf(m, p): the first fewest-terms primitive polynomial, except for three
// GF(2) degrees
func (s *Service) MatlabPrimitivePoly(ctx context.Context, p uint64, m int) (*poly.Poly, error) {
	f, err := field.NewPrimeField(new(big.Int).SetUint64(p))
	if err != nil {
		return nil, fmt.Errorf("GF(%d): %w", p, ErrDomainMismatch)
	}
	if exps, ok := matlabExceptions[m]; ok && p == 2 {
		return poly.FromDegrees(f, exps, nil)
	}
	return s.PrimitivePoly(ctx, f, m, MinTerms())
}

// IsIrreducible reports whether f is irreducible
func (s *Service) IsIrreducible(f *poly.Poly) (bool, error) {
	return s.tester.IsIrreducible(f)
}

// IsPrimitive reports whether f is primitive
func (s *Service) IsPrimitive(ctx context.Context, f *poly.Poly) (bool, error) {
	return s.tester.IsPrimitive(ctx, f)
}

// IsConway reports whether f is a Conway polynomial
func (s *Service) IsConway(ctx context.Context, f *poly.Poly, search bool) (bool, error) {
	return s.oracle.IsConway(ctx, f, search)
}

// IsConwayConsistent reports whether f is primitive and compatible with the
// Conway polynomials of all its subfields
func (s *Service) IsConwayConsistent(ctx context.Context, f *poly.Poly, search bool) (bool, error) {
	return s.oracle.IsConwayConsistent(ctx, f, search)
}

// GF returns the field GF(p^m). Extension fields are defined by the Conway
// polynomial when it is tabled and by the first primitive polynomial otherwise.
func (s *Service) GF(ctx context.Context, p uint64, m int) (field.Field, error) {
	if m < 1 {
		return nil, fmt.Errorf("extension degree %d: %w", m, ErrInvalidDegree)
	}
	base, err := field.NewPrimeField(new(big.Int).SetUint64(p))
	if err != nil {
		return nil, fmt.Errorf("GF(%d): %w", p, ErrDomainMismatch)
	}
	if m == 1 {
		return base, nil
	}

	modulus, err := s.oracle.Conway(ctx, p, m, false)
	if errors.Is(err, ErrOutOfDatabaseScope) {
		log.Debugf("no Conway polynomial for GF(%d^%d), using the first primitive polynomial", p, m)
		modulus, err = s.PrimitivePoly(ctx, base, m)
	}
	if err != nil {
		return nil, err
	}

	if p == 2 {
		bits := new(big.Int)
		for i, c := range modulus.Coeffs() {
			if !c.IsZero() {
				bits.SetBit(bits, i, 1)
			}
		}
		return field.NewBinaryField(m, bits)
	}
	coeffs := make([]uint64, m+1)
	for i, c := range modulus.Coeffs() {
		coeffs[i] = c.Int().Uint64()
	}
	return field.NewExtensionField(p, coeffs)
}
