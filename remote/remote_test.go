package remote

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/gfpoly"
	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/host"
	"github.com/ppopth/gfpoly/pb"
	"github.com/ppopth/gfpoly/poly"
	"github.com/ppopth/gfpoly/search"
)

type loopback struct {
	service *gfpoly.Service
	server  *Server
	client  *Client
}

func newLoopback(t *testing.T) *loopback {
	t.Helper()
	local := netip.MustParseAddrPort("127.0.0.1:0")

	service, err := gfpoly.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { service.Close() })

	sh, err := host.NewHost(host.WithAddrPort(local))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sh.Close() })
	server, err := NewServer(service, sh)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { server.Close() })

	ch, err := host.NewHost(host.WithAddrPort(local))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ch.Close() })
	conn, err := ch.Connect(context.Background(), sh.LocalAddr())
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	return &loopback{service: service, server: server, client: client}
}

func mustDegrees(f field.Field, degrees ...int) *poly.Poly {
	p, err := poly.FromDegrees(f, degrees, nil)
	if err != nil {
		panic(err)
	}
	return p
}

func TestRemoteSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l := newLoopback(t)
	gf2 := field.MustPrimeField(2)
	gf7 := field.MustPrimeField(7)

	tests := []struct {
		name      string
		primitive bool
		f         field.Field
		degree    int
		req       Request
		want      []*poly.Poly
	}{
		{"first", false, gf7, 9, Request{}, []*poly.Poly{poly.FromUint64s(gf7, 2, 0, 0, 0, 0, 0, 0, 0, 0, 1)}},
		{"trinomial", false, gf7, 9, Request{Terms: 3}, []*poly.Poly{poly.FromUint64s(gf7, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1)}},
		{"min terms", false, gf2, 1001, Request{Terms: search.MinTerms}, []*poly.Poly{mustDegrees(gf2, 1001, 17, 0)}},
		{"count", false, gf2, 4, Request{Count: 5}, []*poly.Poly{
			mustDegrees(gf2, 4, 1, 0),
			mustDegrees(gf2, 4, 3, 0),
			mustDegrees(gf2, 4, 3, 2, 1, 0),
		}},
		{"primitive", true, gf2, 8, Request{Terms: search.MinTerms, Search: true}, []*poly.Poly{mustDegrees(gf2, 8, 4, 3, 2, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			find := l.client.IrreduciblePolys
			if tt.primitive {
				find = l.client.PrimitivePolys
			}
			got, err := find(ctx, tt.f, tt.degree, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d polynomials, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Fatalf("polynomial %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRemoteExtensionField(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l := newLoopback(t)

	gf9, err := l.service.GF(ctx, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	want, err := l.service.IrreduciblePoly(ctx, gf9, 3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := l.client.IrreduciblePolys(ctx, gf9, 3, Request{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Equal(want) {
		t.Fatalf("got %v, want %s", got, want)
	}

	// a modulus of the client's own choosing
	other, err := field.NewExtensionField(3, []uint64{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	got, err = l.client.IrreduciblePolys(ctx, other, 2, Request{})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Field().Descriptor() != other.Descriptor() {
		t.Fatalf("got field %+v, want %+v", got[0].Field().Descriptor(), other.Descriptor())
	}
	if ok, err := l.service.IsIrreducible(got[0]); err != nil || !ok {
		t.Fatalf("IsIrreducible(%s) = %v, %v", got[0], ok, err)
	}
}

func TestRemoteTests(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l := newLoopback(t)
	gf2 := field.MustPrimeField(2)

	conway, err := l.client.ConwayPoly(ctx, 2, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustDegrees(gf2, 8, 4, 3, 2, 0); !conway.Equal(want) {
		t.Fatalf("got %s, want %s", conway, want)
	}
	aes := mustDegrees(gf2, 8, 4, 3, 1, 0)

	tests := []struct {
		name string
		test func() (bool, error)
		want bool
	}{
		{"conway irreducible", func() (bool, error) { return l.client.IsIrreducible(ctx, conway) }, true},
		{"conway primitive", func() (bool, error) { return l.client.IsPrimitive(ctx, conway) }, true},
		{"conway", func() (bool, error) { return l.client.IsConway(ctx, conway, false) }, true},
		{"conway consistent", func() (bool, error) { return l.client.IsConwayConsistent(ctx, conway, false) }, true},
		{"aes irreducible", func() (bool, error) { return l.client.IsIrreducible(ctx, aes) }, true},
		{"aes primitive", func() (bool, error) { return l.client.IsPrimitive(ctx, aes) }, false},
		{"aes conway", func() (bool, error) { return l.client.IsConway(ctx, aes, false) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.test()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l := newLoopback(t)
	gf2 := field.MustPrimeField(2)

	if _, err := l.client.IrreduciblePolys(ctx, gf2, 0, Request{}); !errors.Is(err, gfpoly.ErrInvalidDegree) {
		t.Fatalf("expected ErrInvalidDegree, got %v", err)
	}
	if _, err := l.client.IrreduciblePolys(ctx, gf2, 10000, Request{Terms: search.MinTerms}); !errors.Is(err, gfpoly.ErrOutOfDatabaseScope) {
		t.Fatalf("expected ErrOutOfDatabaseScope, got %v", err)
	}
	if _, err := l.client.IrreduciblePolys(ctx, gf2, 4, Request{Terms: 2}); !errors.Is(err, gfpoly.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.client.IrreduciblePolys(ctx, gf2, 4, Request{Terms: 9}); !errors.Is(err, gfpoly.ErrInvalidTerms) {
		t.Fatalf("expected ErrInvalidTerms, got %v", err)
	}
	if _, err := l.client.ConwayPoly(ctx, 2, 400, false); !errors.Is(err, gfpoly.ErrOutOfDatabaseScope) {
		t.Fatalf("expected ErrOutOfDatabaseScope, got %v", err)
	}
	if _, err := l.client.IsIrreducible(ctx, poly.One(gf2)); !errors.Is(err, gfpoly.ErrInvalidDegree) {
		t.Fatalf("expected ErrInvalidDegree, got %v", err)
	}
	if _, err := l.client.IsPrimitive(ctx, mustDegrees(gf2, 2, 0)); !errors.Is(err, gfpoly.ErrNotIrreducible) {
		t.Fatalf("expected ErrNotIrreducible, got %v", err)
	}

	var remoteErr *Error
	_, err := l.client.Do(ctx, &pb.Query{Kind: pb.Query_IS_IRREDUCIBLE.Enum()})
	if !errors.As(err, &remoteErr) || remoteErr.Code != pb.Response_DOMAIN_MISMATCH {
		t.Fatalf("expected a DOMAIN_MISMATCH error, got %v", err)
	}
	_, err = l.client.Do(ctx, &pb.Query{Kind: pb.Query_Kind(42).Enum()})
	if !errors.As(err, &remoteErr) || remoteErr.Code != pb.Response_INTERNAL {
		t.Fatalf("expected an INTERNAL error, got %v", err)
	}

	// reducible modulus
	bad := &pb.Query{
		Kind:           pb.Query_IRREDUCIBLE_POLY.Enum(),
		Characteristic: proto.String("3"),
		FieldDegree:    proto.Uint32(2),
		Modulus:        proto.String("2,0,1"),
		Degree:         proto.Uint32(2),
	}
	if _, err := l.client.Do(ctx, bad); !errors.Is(err, gfpoly.ErrDomainMismatch) {
		t.Fatalf("expected ErrDomainMismatch, got %v", err)
	}
}

func TestConcurrentQueries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l := newLoopback(t)
	gf2 := field.MustPrimeField(2)

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			degree := 2 + i%30
			got, err := l.client.IrreduciblePolys(ctx, gf2, degree, Request{Terms: search.MinTerms})
			if err != nil {
				errs <- err
				return
			}
			want, err := l.service.IrreduciblePoly(ctx, gf2, degree, gfpoly.MinTerms())
			if err != nil {
				errs <- err
				return
			}
			if !got[0].Equal(want) {
				errs <- errors.New("response matched to the wrong query")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestHandleWithoutNetwork(t *testing.T) {
	service, err := gfpoly.New()
	if err != nil {
		t.Fatal(err)
	}
	defer service.Close()
	h, err := host.NewHost(host.WithAddrPort(netip.MustParseAddrPort("127.0.0.1:0")))
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	s, err := NewServer(service, h, WithMaxCount(2), WithMaxDegree(100))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	resp := s.Handle(context.Background(), &pb.Query{
		Id:             proto.Uint64(7),
		Kind:           pb.Query_IRREDUCIBLE_POLY.Enum(),
		Characteristic: proto.String("2"),
		Degree:         proto.Uint32(101),
	})
	if resp.GetId() != 7 || resp.GetCode() != pb.Response_INVALID_DEGREE {
		t.Fatalf("unexpected response %v", resp)
	}
	resp = s.Handle(context.Background(), &pb.Query{
		Kind:           pb.Query_IRREDUCIBLE_POLY.Enum(),
		Characteristic: proto.String("2"),
		Degree:         proto.Uint32(4),
		Count:          proto.Uint32(3),
	})
	if resp.GetCode() != pb.Response_INTERNAL {
		t.Fatalf("expected the count limit to be enforced, got %v", resp)
	}
}
