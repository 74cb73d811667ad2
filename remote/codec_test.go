package remote

import (
	"errors"
	"math/big"
	"testing"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/pb"
	"github.com/ppopth/gfpoly/poly"
)

func TestPolyRoundTrip(t *testing.T) {
	gf2 := field.MustPrimeField(2)
	gf7 := field.MustPrimeField(7)
	gf256, err := field.NewBinaryField(8, big.NewInt(0x11d))
	if err != nil {
		t.Fatal(err)
	}
	gf9, err := field.NewExtensionField(3, []uint64{2, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	p127, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	big127, err := field.NewPrimeField(p127)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		f    *poly.Poly
	}{
		{"zero", poly.Zero(gf7)},
		{"one", poly.One(gf2)},
		{"gf2", poly.FromUint64s(gf2, 1, 1, 0, 1, 1, 0, 0, 0, 1)},
		{"gf7", poly.FromUint64s(gf7, 2, 0, 0, 0, 0, 0, 0, 0, 0, 1)},
		{"gf256", poly.FromUint64s(gf256, 0x53, 0xca, 0xff, 1)},
		{"gf9", poly.FromUint64s(gf9, 8, 0, 5, 1)},
		{"mersenne", poly.FromUint64s(big127, 1<<63, 12345, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := proto.Marshal(EncodePoly(tt.f))
			if err != nil {
				t.Fatal(err)
			}
			var m pb.Polynomial
			if err := proto.Unmarshal(data, &m); err != nil {
				t.Fatal(err)
			}
			got, err := DecodePoly(&m)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.f) {
				t.Fatalf("got %s, want %s", got, tt.f)
			}
			if got.Field().Descriptor() != tt.f.Field().Descriptor() {
				t.Fatalf("got field %+v, want %+v", got.Field().Descriptor(), tt.f.Field().Descriptor())
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	gf7 := field.MustPrimeField(7)
	valid := func() *pb.Polynomial {
		return EncodePoly(poly.FromUint64s(gf7, 1, 1, 1))
	}

	tests := []struct {
		name   string
		modify func(m *pb.Polynomial)
	}{
		{"bit width", func(m *pb.Polynomial) { m.BitsPerCoefficient = proto.Uint32(4) }},
		{"truncated", func(m *pb.Polynomial) { m.Coefficients = m.Coefficients[:1] }},
		{"unreduced", func(m *pb.Polynomial) { m.Coefficients[0] |= 0xe0 }},
		{"leading zero", func(m *pb.Polynomial) { m.Degree = proto.Uint32(3); m.Coefficients = append(m.Coefficients, 0) }},
		{"not prime", func(m *pb.Polynomial) { m.Characteristic = proto.String("8") }},
		{"bad characteristic", func(m *pb.Polynomial) { m.Characteristic = proto.String("seven") }},
		{"coefficients without degree", func(m *pb.Polynomial) { m.Degree = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.modify(m)
			if _, err := DecodePoly(m); !errors.Is(err, ErrMalformedPolynomial) {
				t.Fatalf("expected ErrMalformedPolynomial, got %v", err)
			}
		})
	}
	if _, err := DecodePoly(nil); !errors.Is(err, ErrMalformedPolynomial) {
		t.Fatalf("expected ErrMalformedPolynomial, got %v", err)
	}
}
