package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/gfpoly"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/host"
	"github.com/ppopth/gfpoly/pb"
	"github.com/ppopth/gfpoly/poly"
	"github.com/ppopth/gfpoly/search"
)

var ErrClientClosed = errors.New("client closed")

// Error is a failed query reported by the server. It unwraps to the matching
// gfpoly error.
type Error struct {
	Code    pb.Response_Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case pb.Response_INVALID_DEGREE:
		return gfpoly.ErrInvalidDegree
	case pb.Response_DOMAIN_MISMATCH:
		return gfpoly.ErrDomainMismatch
	case pb.Response_NOT_IRREDUCIBLE:
		return gfpoly.ErrNotIrreducible
	case pb.Response_NOT_FOUND:
		return gfpoly.ErrNotFound
	case pb.Response_INVALID_TERMS:
		return gfpoly.ErrInvalidTerms
	case pb.Response_OUT_OF_DATABASE_SCOPE:
		return gfpoly.ErrOutOfDatabaseScope
	case pb.Response_FACTORIZATION_TIMEOUT:
		return gfpoly.ErrFactorizationTimeout
	}
	return nil
}

// Client sends queries over a connection and matches the responses by id.
// Queries may be issued concurrently.
type Client struct {
	conn   *host.Conn
	nextID atomic.Uint64

	mutex   sync.Mutex
	pending map[uint64]chan *pb.Response
	err     error // set once the connection stops delivering responses

	done chan struct{}
}

// NewClient starts reading the responses arriving on conn
func NewClient(conn *host.Conn) *Client {
	c := &Client{
		conn:    conn,
		pending: make(map[uint64]chan *pb.Response),
		done:    make(chan struct{}),
	}
	go c.receiveLoop()
	return c
}

func (c *Client) receiveLoop() {
	defer close(c.done)
	for {
		resp := &pb.Response{}
		if err := c.conn.Receive(context.Background(), resp); err != nil {
			c.mutex.Lock()
			c.err = fmt.Errorf("%w: %v", ErrClientClosed, err)
			c.mutex.Unlock()
			return
		}

		c.mutex.Lock()
		ch, ok := c.pending[resp.GetId()]
		delete(c.pending, resp.GetId())
		c.mutex.Unlock()
		if !ok {
			log.Warnf("response to unknown query %d from %s", resp.GetId(), c.conn.Peer())
			continue
		}
		ch <- resp
	}
}

func (c *Client) forget(id uint64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.pending, id)
}

// Do sends a query under a fresh id and waits for its response. Responses with
// an error code are returned as *Error.
func (c *Client) Do(ctx context.Context, q *pb.Query) (*pb.Response, error) {
	q = proto.Clone(q).(*pb.Query)
	id := c.nextID.Add(1)
	q.Id = proto.Uint64(id)
	ch := make(chan *pb.Response, 1)

	c.mutex.Lock()
	if c.err != nil {
		err := c.err
		c.mutex.Unlock()
		return nil, err
	}
	c.pending[id] = ch
	c.mutex.Unlock()

	if err := c.conn.Send(q); err != nil {
		c.forget(id)
		return nil, err
	}

	var resp *pb.Response
	select {
	case resp = <-ch:
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case <-c.done:
		select {
		case resp = <-ch:
		default:
			c.forget(id)
			c.mutex.Lock()
			defer c.mutex.Unlock()
			return nil, c.err
		}
	}
	if resp.GetCode() != pb.Response_OK {
		return nil, &Error{Code: resp.GetCode(), Message: resp.GetError()}
	}
	return resp, nil
}

// Close closes the connection and waits for the receive loop to stop
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}

// Request holds the options of a polynomial search
type Request struct {
	// Terms is 0 for any term count, search.MinTerms, or an exact count
	Terms   int
	Reverse bool
	Random  bool
	// Search skips the server's reference tables
	Search bool
	// Count is the number of polynomials wanted, at least one
	Count int
}

func fieldQuery(kind pb.Query_Kind, f field.Field, degree int, r Request) (*pb.Query, error) {
	if f == nil {
		return nil, fmt.Errorf("nil field: %w", gfpoly.ErrDomainMismatch)
	}
	if degree < 0 {
		return nil, fmt.Errorf("degree %d: %w", degree, gfpoly.ErrInvalidDegree)
	}
	if r.Terms < search.MinTerms {
		return nil, fmt.Errorf("%d terms: %w", r.Terms, gfpoly.ErrInvalidTerms)
	}
	d := f.Descriptor()
	q := &pb.Query{
		Kind:           kind.Enum(),
		Characteristic: proto.String(d.Characteristic),
		FieldDegree:    proto.Uint32(uint32(d.Degree)),
		Degree:         proto.Uint32(uint32(degree)),
		Terms:          proto.Int32(int32(r.Terms)),
		Reverse:        proto.Bool(r.Reverse),
		Random:         proto.Bool(r.Random),
		Search:         proto.Bool(r.Search),
		Count:          proto.Uint32(uint32(max(1, r.Count))),
	}
	if d.Modulus != "" {
		q.Modulus = proto.String(d.Modulus)
	}
	return q, nil
}

func (c *Client) polys(ctx context.Context, q *pb.Query, want field.Field) ([]*poly.Poly, error) {
	resp, err := c.Do(ctx, q)
	if err != nil {
		return nil, err
	}
	polys := make([]*poly.Poly, len(resp.GetPolys()))
	for i, m := range resp.GetPolys() {
		if polys[i], err = DecodePoly(m); err != nil {
			return nil, err
		}
		if want != nil && polys[i].Field().Descriptor() != want.Descriptor() {
			return nil, fmt.Errorf("server answered over %s instead of %s: %w", polys[i].Field().Descriptor(), want.Descriptor(), gfpoly.ErrDomainMismatch)
		}
	}
	return polys, nil
}

// IrreduciblePolys asks for monic irreducible polynomials of the degree over f
func (c *Client) IrreduciblePolys(ctx context.Context, f field.Field, degree int, r Request) ([]*poly.Poly, error) {
	q, err := fieldQuery(pb.Query_IRREDUCIBLE_POLY, f, degree, r)
	if err != nil {
		return nil, err
	}
	return c.polys(ctx, q, f)
}

// PrimitivePolys asks for monic primitive polynomials of the degree over f
func (c *Client) PrimitivePolys(ctx context.Context, f field.Field, degree int, r Request) ([]*poly.Poly, error) {
	q, err := fieldQuery(pb.Query_PRIMITIVE_POLY, f, degree, r)
	if err != nil {
		return nil, err
	}
	return c.polys(ctx, q, f)
}

// ConwayPoly asks for the Conway polynomial C(p, m)
func (c *Client) ConwayPoly(ctx context.Context, p uint64, m int, search bool) (*poly.Poly, error) {
	if m < 0 {
		return nil, fmt.Errorf("degree %d: %w", m, gfpoly.ErrInvalidDegree)
	}
	polys, err := c.polys(ctx, &pb.Query{
		Kind:           pb.Query_CONWAY_POLY.Enum(),
		Characteristic: proto.String(fmt.Sprint(p)),
		Degree:         proto.Uint32(uint32(m)),
		Search:         proto.Bool(search),
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(polys) != 1 {
		return nil, fmt.Errorf("expected one Conway polynomial, got %d", len(polys))
	}
	return polys[0], nil
}

func (c *Client) test(ctx context.Context, kind pb.Query_Kind, f *poly.Poly, search bool) (bool, error) {
	if f == nil {
		return false, fmt.Errorf("nil polynomial: %w", gfpoly.ErrDomainMismatch)
	}
	resp, err := c.Do(ctx, &pb.Query{
		Kind:   kind.Enum(),
		Poly:   EncodePoly(f),
		Search: proto.Bool(search),
	})
	if err != nil {
		return false, err
	}
	return resp.GetResult(), nil
}

func (c *Client) IsIrreducible(ctx context.Context, f *poly.Poly) (bool, error) {
	return c.test(ctx, pb.Query_IS_IRREDUCIBLE, f, false)
}

func (c *Client) IsPrimitive(ctx context.Context, f *poly.Poly) (bool, error) {
	return c.test(ctx, pb.Query_IS_PRIMITIVE, f, false)
}

func (c *Client) IsConway(ctx context.Context, f *poly.Poly, search bool) (bool, error) {
	return c.test(ctx, pb.Query_IS_CONWAY, f, search)
}

func (c *Client) IsConwayConsistent(ctx context.Context, f *poly.Poly, search bool) (bool, error) {
	return c.test(ctx, pb.Query_IS_CONWAY_CONSISTENT, f, search)
}
