// Package remote serves polynomial queries to peers over a QUIC host.
package remote

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/gogo/protobuf/proto"
	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/ppopth/gfpoly"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/host"
	"github.com/ppopth/gfpoly/pb"
	"github.com/ppopth/gfpoly/poly"
)

var log = logging.Logger("remote")

const (
	DefaultMaxInFlight = 16
	DefaultMaxCount    = 1024
	DefaultMaxDegree   = 1 << 16
)

// Server answers the queries of every peer connected to a host
type Server struct {
	service *gfpoly.Service
	host    *host.Host

	maxInFlight int
	maxCount    int
	maxDegree   int

	ctx       context.Context
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
}

// ServerOption is a functional option for the Server
type ServerOption func(*Server) error

// WithMaxInFlight bounds the number of queries of one peer handled at a time
func WithMaxInFlight(n int) ServerOption {
	return func(s *Server) error {
		if n < 1 {
			return fmt.Errorf("in-flight limit must be positive, got %d", n)
		}
		s.maxInFlight = n
		return nil
	}
}

// WithMaxCount bounds the number of polynomials returned by one query
func WithMaxCount(n int) ServerOption {
	return func(s *Server) error {
		if n < 1 {
			return fmt.Errorf("count limit must be positive, got %d", n)
		}
		s.maxCount = n
		return nil
	}
}

// WithMaxDegree bounds the polynomial and extension degrees a query may ask for
func WithMaxDegree(n int) ServerOption {
	return func(s *Server) error {
		if n < 1 {
			return fmt.Errorf("degree limit must be positive, got %d", n)
		}
		s.maxDegree = n
		return nil
	}
}

// NewServer starts serving the peers of h, including those already connected
func NewServer(service *gfpoly.Service, h *host.Host, opts ...ServerOption) (*Server, error) {
	if service == nil || h == nil {
		return nil, fmt.Errorf("server needs a service and a host")
	}
	s := &Server{
		service:     service,
		host:        h,
		maxInFlight: DefaultMaxInFlight,
		maxCount:    DefaultMaxCount,
		maxDegree:   DefaultMaxDegree,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	h.SetPeerHandlers(s.addPeer, s.removePeer)
	return s, nil
}

func (s *Server) addPeer(id peer.ID, conn *host.Conn) {
	log.Debugf("serving %s", id)
	s.waitGroup.Add(1)
	go func() {
		defer s.waitGroup.Done()
		s.serve(conn)
	}()
}

func (s *Server) removePeer(id peer.ID) {
	log.Debugf("peer %s disconnected", id)
}

// Close stops serving, closes the peer connections and waits for the handlers
func (s *Server) Close() error {
	s.cancel()
	s.host.SetPeerHandlers(nil, nil)
	for _, id := range s.host.Peers() {
		if conn, ok := s.host.Conn(id); ok {
			conn.Close()
		}
	}
	s.waitGroup.Wait()
	return nil
}

func (s *Server) serve(conn *host.Conn) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	sem := make(chan struct{}, s.maxInFlight)
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		q := &pb.Query{}
		if err := conn.Receive(ctx, q); err != nil {
			if ctx.Err() == nil {
				log.Debugf("connection to %s ended: %v", conn.Peer(), err)
			}
			return
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			resp := s.Handle(ctx, q)
			if err := conn.Send(resp); err != nil {
				log.Warnf("failed to answer query %d of %s: %v", q.GetId(), conn.Peer(), err)
			}
		}()
	}
}

// Handle answers a single query
func (s *Server) Handle(ctx context.Context, q *pb.Query) *pb.Response {
	resp := &pb.Response{Id: proto.Uint64(q.GetId())}
	if err := s.handle(ctx, q, resp); err != nil {
		log.Debugf("query %d (%s) failed: %v", q.GetId(), q.GetKind(), err)
		return &pb.Response{
			Id:    resp.Id,
			Code:  codeOf(err).Enum(),
			Error: proto.String(err.Error()),
		}
	}
	resp.Code = pb.Response_OK.Enum()
	return resp
}

func (s *Server) handle(ctx context.Context, q *pb.Query, resp *pb.Response) error {
	if degree := int(q.GetDegree()); degree > s.maxDegree {
		return fmt.Errorf("degree %d exceeds the server limit %d: %w", degree, s.maxDegree, gfpoly.ErrInvalidDegree)
	}

	switch kind := q.GetKind(); kind {
	case pb.Query_IRREDUCIBLE_POLY, pb.Query_PRIMITIVE_POLY:
		f, err := s.field(ctx, q)
		if err != nil {
			return err
		}
		polys, err := s.find(ctx, q, f)
		if err != nil {
			return err
		}
		for _, p := range polys {
			resp.Polys = append(resp.Polys, EncodePoly(p))
		}

	case pb.Query_CONWAY_POLY:
		p, err := characteristic(q.GetCharacteristic())
		if err != nil {
			return err
		}
		c, err := s.service.ConwayPoly(ctx, p, int(q.GetDegree()), q.GetSearch())
		if err != nil {
			return err
		}
		resp.Polys = []*pb.Polynomial{EncodePoly(c)}

	case pb.Query_IS_IRREDUCIBLE, pb.Query_IS_PRIMITIVE, pb.Query_IS_CONWAY, pb.Query_IS_CONWAY_CONSISTENT:
		f, err := DecodePoly(q.GetPoly())
		if err != nil {
			return fmt.Errorf("%v: %w", err, gfpoly.ErrDomainMismatch)
		}
		if f.Degree() > s.maxDegree {
			return fmt.Errorf("degree %d exceeds the server limit %d: %w", f.Degree(), s.maxDegree, gfpoly.ErrInvalidDegree)
		}
		var result bool
		switch kind {
		case pb.Query_IS_IRREDUCIBLE:
			result, err = s.service.IsIrreducible(f)
		case pb.Query_IS_PRIMITIVE:
			result, err = s.service.IsPrimitive(ctx, f)
		case pb.Query_IS_CONWAY:
			result, err = s.service.IsConway(ctx, f, q.GetSearch())
		default:
			result, err = s.service.IsConwayConsistent(ctx, f, q.GetSearch())
		}
		if err != nil {
			return err
		}
		resp.Result = proto.Bool(result)

	default:
		return fmt.Errorf("unknown query kind %d", kind)
	}
	return nil
}

func characteristic(s string) (uint64, error) {
	p, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("characteristic %q: %w", s, gfpoly.ErrDomainMismatch)
	}
	return p, nil
}

// field resolves the coefficient field of a search query. Without a modulus an
// extension field is the server's GF(p^m).
func (s *Server) field(ctx context.Context, q *pb.Query) (field.Field, error) {
	p, err := characteristic(q.GetCharacteristic())
	if err != nil {
		return nil, err
	}
	m := max(1, int(q.GetFieldDegree()))
	if m > s.maxDegree {
		return nil, fmt.Errorf("extension degree %d exceeds the server limit %d: %w", m, s.maxDegree, gfpoly.ErrInvalidDegree)
	}
	if q.Modulus == nil || m == 1 {
		return s.service.GF(ctx, p, m)
	}

	f, err := decodeField(field.Descriptor{Characteristic: q.GetCharacteristic(), Degree: m, Modulus: q.GetModulus()})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, gfpoly.ErrDomainMismatch)
	}
	// a reducible modulus does not define a field
	base, err := field.NewPrimeField(new(big.Int).SetUint64(p))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, gfpoly.ErrDomainMismatch)
	}
	modulus, err := modulusPoly(base, q.GetModulus())
	if err != nil {
		return nil, err
	}
	ok, err := s.service.IsIrreducible(modulus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("modulus %s is reducible: %w", modulus, gfpoly.ErrDomainMismatch)
	}
	return f, nil
}

func modulusPoly(base field.Field, modulus string) (*poly.Poly, error) {
	var coeffs []uint64
	for _, c := range strings.Split(modulus, ",") {
		v, err := strconv.ParseUint(c, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("modulus %q: %w", modulus, gfpoly.ErrDomainMismatch)
		}
		coeffs = append(coeffs, v)
	}
	return poly.FromUint64s(base, coeffs...), nil
}

func (s *Server) options(q *pb.Query) ([]gfpoly.QueryOption, error) {
	var opts []gfpoly.QueryOption
	switch t := q.GetTerms(); {
	case t == -1:
		opts = append(opts, gfpoly.MinTerms())
	case t > 0:
		opts = append(opts, gfpoly.Terms(int(t)))
	case t < -1:
		return nil, fmt.Errorf("%d terms: %w", t, gfpoly.ErrInvalidTerms)
	}
	if q.GetReverse() {
		opts = append(opts, gfpoly.Reverse())
	}
	if q.GetRandom() {
		opts = append(opts, gfpoly.Random())
	}
	if q.GetSearch() {
		opts = append(opts, gfpoly.WithoutDatabase())
	}
	return opts, nil
}

// find returns up to the requested number of polynomials, at least one
func (s *Server) find(ctx context.Context, q *pb.Query, f field.Field) ([]*poly.Poly, error) {
	opts, err := s.options(q)
	if err != nil {
		return nil, err
	}
	count := max(1, int(q.GetCount()))
	if count > s.maxCount {
		return nil, fmt.Errorf("count %d exceeds the server limit %d", count, s.maxCount)
	}
	degree := int(q.GetDegree())
	primitive := q.GetKind() == pb.Query_PRIMITIVE_POLY

	if count == 1 || q.GetRandom() {
		polys := make([]*poly.Poly, 0, count)
		for range count {
			var p *poly.Poly
			if primitive {
				p, err = s.service.PrimitivePoly(ctx, f, degree, opts...)
			} else {
				p, err = s.service.IrreduciblePoly(ctx, f, degree, opts...)
			}
			if err != nil {
				return nil, err
			}
			polys = append(polys, p)
		}
		return polys, nil
	}

	all := s.service.IrreduciblePolys
	if primitive {
		all = s.service.PrimitivePolys
	}
	var polys []*poly.Poly
	for p, err := range all(ctx, f, degree, opts...) {
		if err != nil {
			return nil, err
		}
		polys = append(polys, p)
		if len(polys) == count {
			break
		}
	}
	if len(polys) == 0 {
		return nil, gfpoly.ErrNotFound
	}
	return polys, nil
}

// codeOf maps an error to its wire code
func codeOf(err error) pb.Response_Code {
	switch {
	case errors.Is(err, gfpoly.ErrInvalidDegree):
		return pb.Response_INVALID_DEGREE
	case errors.Is(err, gfpoly.ErrDomainMismatch):
		return pb.Response_DOMAIN_MISMATCH
	case errors.Is(err, gfpoly.ErrNotIrreducible):
		return pb.Response_NOT_IRREDUCIBLE
	case errors.Is(err, gfpoly.ErrNotFound):
		return pb.Response_NOT_FOUND
	case errors.Is(err, gfpoly.ErrInvalidTerms):
		return pb.Response_INVALID_TERMS
	case errors.Is(err, gfpoly.ErrOutOfDatabaseScope):
		return pb.Response_OUT_OF_DATABASE_SCOPE
	case errors.Is(err, gfpoly.ErrFactorizationTimeout):
		return pb.Response_FACTORIZATION_TIMEOUT
	default:
		return pb.Response_INTERNAL
	}
}
