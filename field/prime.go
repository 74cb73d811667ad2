package field

import (
	"crypto/rand"
	"fmt"
	"iter"
	"math/big"
)

// PrimeField represents a prime finite field F_p
type PrimeField struct {
	p *big.Int // the prime modulus
}

// NewPrimeField creates a new prime field. It returns an error when p is not a
// prime number.
func NewPrimeField(p *big.Int) (*PrimeField, error) {
	if p == nil || p.Cmp(big.NewInt(2)) < 0 || !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("characteristic %v is not prime", p)
	}
	return &PrimeField{p: new(big.Int).Set(p)}, nil
}

// MustPrimeField is like NewPrimeField but panics on a non-prime modulus
func MustPrimeField(p uint64) *PrimeField {
	f, err := NewPrimeField(new(big.Int).SetUint64(p))
	if err != nil {
		panic(err)
	}
	return f
}

// PrimeFieldElement represents an element in a prime field
type PrimeFieldElement struct {
	value *big.Int    // element value in range [0, p-1]
	field *PrimeField // reference to parent field
}

func (f *PrimeField) element(v *big.Int) *PrimeFieldElement {
	return &PrimeFieldElement{value: v, field: f}
}

// Zero returns the additive identity element (0)
func (f *PrimeField) Zero() Element {
	return f.element(big.NewInt(0))
}

// One returns the multiplicative identity element (1)
func (f *PrimeField) One() Element {
	return f.element(big.NewInt(1))
}

// Random returns a uniformly random field element
func (f *PrimeField) Random() (Element, error) {
	val, err := rand.Int(rand.Reader, f.p)
	if err != nil {
		return nil, err
	}
	return f.element(val), nil
}

// FromInt reduces v modulo p
func (f *PrimeField) FromInt(v *big.Int) Element {
	val := new(big.Int).Mod(v, f.p)
	return f.element(val)
}

// FromUint64 reduces v modulo p
func (f *PrimeField) FromUint64(v uint64) Element {
	return f.FromInt(new(big.Int).SetUint64(v))
}

// FromBytes creates a field element from byte array
func (f *PrimeField) FromBytes(data []byte) Element {
	return f.FromInt(new(big.Int).SetBytes(data))
}

// FromBits creates a field element from bits with specified bit length
func (f *PrimeField) FromBits(data []byte, bitLen int) Element {
	return f.FromInt(bitsToInt(data, bitLen))
}

// Elements iterates over 0, 1, ..., p-1
func (f *PrimeField) Elements() iter.Seq[Element] {
	return elementsOf(f.p, f.FromInt)
}

// BitsPerElement returns the number of bits per field element
func (f *PrimeField) BitsPerElement() int {
	return new(big.Int).Sub(f.p, big.NewInt(1)).BitLen()
}

// Order returns the order (size) of the field, which is p for a prime field
func (f *PrimeField) Order() *big.Int {
	return new(big.Int).Set(f.p)
}

// Characteristic returns p
func (f *PrimeField) Characteristic() *big.Int {
	return new(big.Int).Set(f.p)
}

// Degree returns 1
func (f *PrimeField) Degree() int {
	return 1
}

// Descriptor returns the structural identity GF(p)
func (f *PrimeField) Descriptor() Descriptor {
	return Descriptor{Characteristic: f.p.String(), Degree: 1}
}

func (e *PrimeFieldElement) other(b Element) *PrimeFieldElement {
	other, ok := b.(*PrimeFieldElement)
	if !ok || (other.field != e.field && other.field.p.Cmp(e.field.p) != 0) {
		panic("incompatible field elements")
	}
	return other
}

// Add returns e + b in the field
func (e *PrimeFieldElement) Add(b Element) Element {
	result := new(big.Int).Add(e.value, e.other(b).value)
	if result.Cmp(e.field.p) >= 0 {
		result.Sub(result, e.field.p)
	}
	return e.field.element(result)
}

// Sub returns e - b in the field
func (e *PrimeFieldElement) Sub(b Element) Element {
	result := new(big.Int).Sub(e.value, e.other(b).value)
	if result.Sign() < 0 {
		result.Add(result, e.field.p)
	}
	return e.field.element(result)
}

// Neg returns -e in the field
func (e *PrimeFieldElement) Neg() Element {
	if e.value.Sign() == 0 {
		return e.field.Zero()
	}
	return e.field.element(new(big.Int).Sub(e.field.p, e.value))
}

// Mul returns e * b in the field
func (e *PrimeFieldElement) Mul(b Element) Element {
	result := new(big.Int).Mul(e.value, e.other(b).value)
	result.Mod(result, e.field.p)
	return e.field.element(result)
}

// Inv returns the multiplicative inverse of e
func (e *PrimeFieldElement) Inv() Element {
	inv := new(big.Int).ModInverse(e.value, e.field.p)
	if inv == nil {
		panic("element is not invertible")
	}
	return e.field.element(inv)
}

// Exp returns e^n in the field
func (e *PrimeFieldElement) Exp(n *big.Int) Element {
	return e.field.element(new(big.Int).Exp(e.value, n, e.field.p))
}

// IsZero returns true if e equals zero
func (e *PrimeFieldElement) IsZero() bool {
	return e.value.Sign() == 0
}

// IsOne returns true if e equals one
func (e *PrimeFieldElement) IsOne() bool {
	return e.value.IsInt64() && e.value.Int64() == 1
}

// Equal returns true if e equals b
func (e *PrimeFieldElement) Equal(b Element) bool {
	other, ok := b.(*PrimeFieldElement)
	if !ok {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// Field returns the parent field
func (e *PrimeFieldElement) Field() Field {
	return e.field
}

// Clone returns a copy of e
func (e *PrimeFieldElement) Clone() Element {
	return e.field.element(new(big.Int).Set(e.value))
}

// Int returns the residue in [0, p-1]
func (e *PrimeFieldElement) Int() *big.Int {
	return new(big.Int).Set(e.value)
}

// Bytes returns the byte representation of e
func (e *PrimeFieldElement) Bytes() []byte {
	return e.value.Bytes()
}

// Bits returns the bit representation with specified bit length
func (e *PrimeFieldElement) Bits(bitLen int) []byte {
	return intToBits(e.value, bitLen)
}

// String returns the string representation of e
func (e *PrimeFieldElement) String() string {
	return e.value.String()
}
