package field

import (
	"crypto/rand"
	"fmt"
	"iter"
	"math/big"
	"strings"
)

// BinaryField represents a binary finite field GF(2^n)
type BinaryField struct {
	n           int      // field extension degree
	irreducible *big.Int // irreducible polynomial, bit i is the coefficient of x^i
}

// NewBinaryField creates GF(2^n) defined by the given irreducible polynomial.
// Irreducibility itself is not verified here.
func NewBinaryField(n int, irreducible *big.Int) (*BinaryField, error) {
	if n < 1 {
		return nil, fmt.Errorf("extension degree must be positive, got %d", n)
	}
	if irreducible == nil || irreducible.BitLen() != n+1 {
		return nil, fmt.Errorf("modulus must have degree %d", n)
	}
	if irreducible.Bit(0) == 0 && n > 1 {
		return nil, fmt.Errorf("modulus 0x%x is divisible by x", irreducible)
	}
	return &BinaryField{
		n:           n,
		irreducible: new(big.Int).Set(irreducible),
	}, nil
}

// NewBinaryFieldGF2_8 creates GF(2^8) with the Conway polynomial x^8 + x^4 + x^3 + x^2 + 1
func NewBinaryFieldGF2_8() *BinaryField {
	f, _ := NewBinaryField(8, big.NewInt(0x11D))
	return f
}

// BinaryFieldElement represents an element in a binary field
type BinaryFieldElement struct {
	value *big.Int     // polynomial representation
	field *BinaryField // reference to parent field
}

func (f *BinaryField) element(v *big.Int) *BinaryFieldElement {
	return &BinaryFieldElement{value: v, field: f}
}

// Zero returns the additive identity element (0)
func (f *BinaryField) Zero() Element {
	return f.element(big.NewInt(0))
}

// One returns the multiplicative identity element (1)
func (f *BinaryField) One() Element {
	return f.element(big.NewInt(1))
}

// Random returns a uniformly random field element
func (f *BinaryField) Random() (Element, error) {
	val, err := rand.Int(rand.Reader, f.Order())
	if err != nil {
		return nil, err
	}
	return f.element(val), nil
}

// FromInt interprets the low n bits of v as polynomial coefficients
func (f *BinaryField) FromInt(v *big.Int) Element {
	val := new(big.Int).Mod(v, f.Order())
	return f.element(val)
}

// FromUint64 interprets the low n bits of v as polynomial coefficients
func (f *BinaryField) FromUint64(v uint64) Element {
	return f.FromInt(new(big.Int).SetUint64(v))
}

// FromBytes creates a field element from byte array
func (f *BinaryField) FromBytes(data []byte) Element {
	return f.FromInt(new(big.Int).SetBytes(data))
}

// FromBits creates a field element from bits with specified bit length
func (f *BinaryField) FromBits(data []byte, bitLen int) Element {
	return f.FromInt(bitsToInt(data, bitLen))
}

// Elements iterates over all 2^n bit patterns in ascending order
func (f *BinaryField) Elements() iter.Seq[Element] {
	return elementsOf(f.Order(), f.FromInt)
}

// BitsPerElement returns the number of bits per field element
func (f *BinaryField) BitsPerElement() int {
	return f.n
}

// Order returns 2^n
func (f *BinaryField) Order() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(f.n))
}

// Characteristic returns 2
func (f *BinaryField) Characteristic() *big.Int {
	return big.NewInt(2)
}

// Degree returns n
func (f *BinaryField) Degree() int {
	return f.n
}

// Descriptor returns the structural identity GF(2^n) with its modulus
func (f *BinaryField) Descriptor() Descriptor {
	coeffs := make([]string, f.n+1)
	for i := range coeffs {
		coeffs[i] = fmt.Sprint(f.irreducible.Bit(i))
	}
	return Descriptor{Characteristic: "2", Degree: f.n, Modulus: strings.Join(coeffs, ",")}
}

// Modulus returns a copy of the defining polynomial
func (f *BinaryField) Modulus() *big.Int {
	return new(big.Int).Set(f.irreducible)
}

func (e *BinaryFieldElement) other(b Element) *BinaryFieldElement {
	other, ok := b.(*BinaryFieldElement)
	if !ok || (other.field != e.field && other.field.irreducible.Cmp(e.field.irreducible) != 0) {
		panic("incompatible field elements")
	}
	return other
}

// Add returns e + b in the field (XOR operation)
func (e *BinaryFieldElement) Add(b Element) Element {
	return e.field.element(new(big.Int).Xor(e.value, e.other(b).value))
}

// Sub returns e - b in the field (same as Add in GF(2^n))
func (e *BinaryFieldElement) Sub(b Element) Element {
	return e.Add(b)
}

// Neg returns e, every element is its own additive inverse
func (e *BinaryFieldElement) Neg() Element {
	return e.Clone()
}

// Mul returns e * b in the field using polynomial multiplication with reduction
func (e *BinaryFieldElement) Mul(b Element) Element {
	return e.field.element(e.field.reduce(clmul(e.value, e.other(b).value)))
}

// reduce performs polynomial reduction modulo the irreducible polynomial
func (f *BinaryField) reduce(val *big.Int) *big.Int {
	result := new(big.Int).Set(val)
	for result.BitLen() > f.n {
		shift := result.BitLen() - f.irreducible.BitLen()
		result.Xor(result, new(big.Int).Lsh(f.irreducible, uint(shift)))
	}
	return result
}

// Inv returns the multiplicative inverse of e using extended Euclidean algorithm
func (e *BinaryFieldElement) Inv() Element {
	if e.IsZero() {
		panic("zero element is not invertible")
	}

	oldR := new(big.Int).Set(e.field.irreducible)
	r := new(big.Int).Set(e.value)
	oldS := big.NewInt(0)
	s := big.NewInt(1)

	for r.Sign() > 0 {
		q, remainder := clDivMod(oldR, r)
		oldR, r = r, remainder
		oldS, s = s, new(big.Int).Xor(oldS, clmul(q, s))
	}

	return e.field.element(e.field.reduce(oldS))
}

// Exp returns e^n by square and multiply
func (e *BinaryFieldElement) Exp(n *big.Int) Element {
	result := big.NewInt(1)
	for i := n.BitLen() - 1; i >= 0; i-- {
		result = e.field.reduce(clmul(result, result))
		if n.Bit(i) == 1 {
			result = e.field.reduce(clmul(result, e.value))
		}
	}
	return e.field.element(result)
}

// IsZero returns true if e equals zero
func (e *BinaryFieldElement) IsZero() bool {
	return e.value.Sign() == 0
}

// IsOne returns true if e equals one
func (e *BinaryFieldElement) IsOne() bool {
	return e.value.IsInt64() && e.value.Int64() == 1
}

// Equal returns true if e equals b
func (e *BinaryFieldElement) Equal(b Element) bool {
	other, ok := b.(*BinaryFieldElement)
	if !ok {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// Field returns the parent field
func (e *BinaryFieldElement) Field() Field {
	return e.field
}

// Clone returns a copy of e
func (e *BinaryFieldElement) Clone() Element {
	return e.field.element(new(big.Int).Set(e.value))
}

// Int returns the coefficient bit pattern as an integer
func (e *BinaryFieldElement) Int() *big.Int {
	return new(big.Int).Set(e.value)
}

// Bytes returns the byte representation of e
func (e *BinaryFieldElement) Bytes() []byte {
	return e.value.Bytes()
}

// Bits returns the bit representation with specified bit length
func (e *BinaryFieldElement) Bits(bitLen int) []byte {
	return intToBits(e.value, bitLen)
}

// String returns the string representation of e
func (e *BinaryFieldElement) String() string {
	return fmt.Sprintf("0x%x", e.value)
}

// clmul performs carry-less multiplication of two GF(2) bit polynomials
func clmul(a, b *big.Int) *big.Int {
	result := big.NewInt(0)
	shifted := new(big.Int).Set(a)
	for i := 0; i < b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			result.Xor(result, shifted)
		}
		shifted.Lsh(shifted, 1)
	}
	return result
}

// clDivMod performs polynomial division of GF(2) bit polynomials
func clDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	if b.Sign() == 0 {
		panic("division by zero polynomial")
	}

	quotient := big.NewInt(0)
	remainder := new(big.Int).Set(a)
	bDegree := b.BitLen() - 1

	for remainder.BitLen() > bDegree {
		shift := remainder.BitLen() - 1 - bDegree
		quotient.SetBit(quotient, shift, 1)
		remainder.Xor(remainder, new(big.Int).Lsh(b, uint(shift)))
	}

	return quotient, remainder
}
