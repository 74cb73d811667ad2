package field

import (
	"fmt"
	"iter"
	"math/big"
	"strconv"
	"strings"
)

// Element represents an element in a finite field
type Element interface {
	// Add returns a + b in the field
	Add(b Element) Element

	// Sub returns a - b in the field
	Sub(b Element) Element

	// Neg returns -a in the field
	Neg() Element

	// Mul returns a * b in the field
	Mul(b Element) Element

	// Inv returns the multiplicative inverse of a in the field
	Inv() Element

	// Exp returns a^e in the field for a non-negative exponent e
	Exp(e *big.Int) Element

	// IsZero returns true if the element is the zero element
	IsZero() bool

	// IsOne returns true if the element is the multiplicative identity
	IsOne() bool

	// Equal returns true if two elements are equal
	Equal(b Element) bool

	// Clone returns a copy of the element
	Clone() Element

	// Field returns the field the element belongs to
	Field() Field

	// Int returns the integer representation of the element. For GF(p^m) this is
	// sum(a_i * p^i) where a_i is the coefficient of alpha^i.
	Int() *big.Int

	// Bytes returns the byte representation of the element
	Bytes() []byte

	// Bits returns the bit representation with specified bit length
	Bits(bitLen int) []byte

	// String returns the string representation of the element
	String() string
}

// Field represents a finite field
type Field interface {
	// Zero returns the zero element of the field
	Zero() Element

	// One returns the one element of the field
	One() Element

	// Random returns a random element in the field
	Random() (Element, error)

	// FromInt creates a field element from its integer representation
	FromInt(v *big.Int) Element

	// FromUint64 creates a field element from a small integer representation
	FromUint64(v uint64) Element

	// FromBytes creates a field element from bytes
	FromBytes(data []byte) Element

	// FromBits creates a field element from bits with specified bit length
	FromBits(data []byte, bitLen int) Element

	// Elements iterates over every element in ascending integer order
	Elements() iter.Seq[Element]

	// BitsPerElement returns the number of bits per field element
	BitsPerElement() int

	// Order returns the order (size) of the field
	Order() *big.Int

	// Characteristic returns the prime characteristic of the field
	Characteristic() *big.Int

	// Degree returns the extension degree over the prime subfield
	Degree() int

	// Descriptor returns the structural identity of the field
	Descriptor() Descriptor
}

// Descriptor identifies a finite field structurally. Two fields with equal
// descriptors have interchangeable elements.
type Descriptor struct {
	Characteristic string // decimal prime p
	Degree         int    // extension degree m
	Modulus        string // defining polynomial coefficients, empty when m == 1
}

func (d Descriptor) String() string {
	if d.Degree <= 1 {
		return fmt.Sprintf("GF(%s)", d.Characteristic)
	}
	return fmt.Sprintf("GF(%s^%d)", d.Characteristic, d.Degree)
}

// Same reports whether two fields are structurally equal
func Same(a, b Field) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Descriptor() == b.Descriptor()
}

// FromDescriptor rebuilds the field a descriptor identifies
func FromDescriptor(d Descriptor) (Field, error) {
	p, ok := new(big.Int).SetString(d.Characteristic, 10)
	if !ok {
		return nil, fmt.Errorf("invalid characteristic %q", d.Characteristic)
	}
	if d.Degree == 1 {
		return NewPrimeField(p)
	}
	if d.Degree < 1 {
		return nil, fmt.Errorf("invalid extension degree %d", d.Degree)
	}
	if !p.IsUint64() {
		return nil, fmt.Errorf("characteristic %s of GF(%s^%d) does not fit 64 bits", p, p, d.Degree)
	}
	parts := strings.Split(d.Modulus, ",")
	coeffs := make([]uint64, len(parts))
	for i, s := range parts {
		c, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid modulus %q: %w", d.Modulus, err)
		}
		coeffs[i] = c
	}
	if len(coeffs) != d.Degree+1 {
		return nil, fmt.Errorf("modulus %q does not have degree %d", d.Modulus, d.Degree)
	}
	if p.Uint64() == 2 {
		modulus := new(big.Int)
		for i, c := range coeffs {
			if c > 1 {
				return nil, fmt.Errorf("invalid binary modulus %q", d.Modulus)
			}
			modulus.SetBit(modulus, i, uint(c))
		}
		return NewBinaryField(d.Degree, modulus)
	}
	return NewExtensionField(p.Uint64(), coeffs)
}

// elementsOf iterates over the integers 0..order-1 converted by from
func elementsOf(order *big.Int, from func(*big.Int) Element) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		one := big.NewInt(1)
		for v := new(big.Int); v.Cmp(order) < 0; v.Add(v, one) {
			if !yield(from(v)) {
				return
			}
		}
	}
}
