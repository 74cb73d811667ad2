package remote

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/gfpoly/field"
	"github.com/ppopth/gfpoly/pb"
	"github.com/ppopth/gfpoly/poly"
)

var ErrMalformedPolynomial = errors.New("malformed polynomial")

// fields maps descriptors to decoded fields so that polynomials decoded from
// different messages share field instances
var fields sync.Map

func decodeField(d field.Descriptor) (field.Field, error) {
	if d.Degree == 0 {
		d.Degree = 1
	}
	if v, ok := fields.Load(d); ok {
		return v.(field.Field), nil
	}
	f, err := field.FromDescriptor(d)
	if err != nil {
		return nil, err
	}
	v, _ := fields.LoadOrStore(d, f)
	return v.(field.Field), nil
}

// EncodePoly converts a polynomial to its wire form. Coefficients are packed in
// ascending order with the field's bit width each.
func EncodePoly(f *poly.Poly) *pb.Polynomial {
	d := f.Field().Descriptor()
	k := f.Field().BitsPerElement()
	m := &pb.Polynomial{
		Characteristic:     proto.String(d.Characteristic),
		FieldDegree:        proto.Uint32(uint32(d.Degree)),
		BitsPerCoefficient: proto.Uint32(uint32(k)),
	}
	if d.Modulus != "" {
		m.Modulus = proto.String(d.Modulus)
	}
	// the zero polynomial has no degree
	if !f.IsZero() {
		m.Degree = proto.Uint32(uint32(f.Degree()))
		m.Coefficients = field.FieldElementsToBytes(f.Coeffs(), k)
	}
	return m
}

// DecodePoly converts a wire polynomial back, rejecting non-canonical encodings
func DecodePoly(m *pb.Polynomial) (*poly.Poly, error) {
	if m == nil {
		return nil, fmt.Errorf("missing polynomial: %w", ErrMalformedPolynomial)
	}
	f, err := decodeField(field.Descriptor{
		Characteristic: m.GetCharacteristic(),
		Degree:         int(m.GetFieldDegree()),
		Modulus:        m.GetModulus(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPolynomial, err)
	}
	k := f.BitsPerElement()
	if int(m.GetBitsPerCoefficient()) != k {
		return nil, fmt.Errorf("%w: %d bits per coefficient over %s, want %d", ErrMalformedPolynomial, m.GetBitsPerCoefficient(), f.Descriptor(), k)
	}
	if m.Degree == nil {
		if len(m.GetCoefficients()) != 0 {
			return nil, fmt.Errorf("%w: coefficients without a degree", ErrMalformedPolynomial)
		}
		return poly.Zero(f), nil
	}

	n := int(m.GetDegree()) + 1
	data := m.GetCoefficients()
	if len(data) != (n*k+7)/8 {
		return nil, fmt.Errorf("%w: %d coefficient bytes for degree %d", ErrMalformedPolynomial, len(data), n-1)
	}
	coeffs := field.SplitBitsToFieldElements(data, k, f)[:n]
	if !bytes.Equal(field.FieldElementsToBytes(coeffs, k), data) {
		return nil, fmt.Errorf("%w: coefficients are not reduced", ErrMalformedPolynomial)
	}
	p, err := poly.New(f, coeffs)
	if err != nil {
		return nil, err
	}
	if p.Degree() != n-1 {
		return nil, fmt.Errorf("%w: leading coefficient is zero", ErrMalformedPolynomial)
	}
	return p, nil
}
