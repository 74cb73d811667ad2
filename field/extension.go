package field

import (
	"crypto/rand"
	"fmt"
	"iter"
	"math/big"
	"math/bits"
	"strings"
)

// ExtensionField represents GF(p^m) for a word-sized prime p. Elements are
// coefficient vectors over GF(p) reduced modulo a monic irreducible polynomial
// of degree m.
type ExtensionField struct {
	p       uint64
	m       int
	modulus []uint64 // ascending coefficients, modulus[m] == 1
	order   *big.Int
}

// NewExtensionField creates GF(p^m) defined by modulus, given as ascending
// coefficients with a leading 1. Irreducibility itself is not verified here.
func NewExtensionField(p uint64, modulus []uint64) (*ExtensionField, error) {
	if p < 2 || !new(big.Int).SetUint64(p).ProbablyPrime(20) {
		return nil, fmt.Errorf("characteristic %d is not prime", p)
	}
	m := len(modulus) - 1
	if m < 1 {
		return nil, fmt.Errorf("modulus must have positive degree")
	}
	if modulus[m] != 1 {
		return nil, fmt.Errorf("modulus must be monic")
	}
	for i, c := range modulus {
		if c >= p {
			return nil, fmt.Errorf("modulus coefficient %d is %d, not below %d", i, c, p)
		}
	}
	if m > 1 && modulus[0] == 0 {
		return nil, fmt.Errorf("modulus is divisible by x")
	}
	order := new(big.Int).Exp(new(big.Int).SetUint64(p), big.NewInt(int64(m)), nil)
	return &ExtensionField{
		p:       p,
		m:       m,
		modulus: append([]uint64(nil), modulus...),
		order:   order,
	}, nil
}

// ExtensionFieldElement represents an element of GF(p^m)
type ExtensionFieldElement struct {
	coeffs []uint64 // length m, coeffs[i] is the coefficient of alpha^i
	field  *ExtensionField
}

func (f *ExtensionField) element(coeffs []uint64) *ExtensionFieldElement {
	return &ExtensionFieldElement{coeffs: coeffs, field: f}
}

func (f *ExtensionField) addMod(a, b uint64) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 || s >= f.p {
		s -= f.p
	}
	return s
}

func (f *ExtensionField) subMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return f.p - (b - a)
}

func (f *ExtensionField) mulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, f.p)
}

// Zero returns the additive identity element (0)
func (f *ExtensionField) Zero() Element {
	return f.element(make([]uint64, f.m))
}

// One returns the multiplicative identity element (1)
func (f *ExtensionField) One() Element {
	c := make([]uint64, f.m)
	c[0] = 1
	return f.element(c)
}

// Random returns a uniformly random field element
func (f *ExtensionField) Random() (Element, error) {
	v, err := rand.Int(rand.Reader, f.order)
	if err != nil {
		return nil, err
	}
	return f.FromInt(v), nil
}

// FromInt reads the base-p digits of v mod p^m as coefficients
func (f *ExtensionField) FromInt(v *big.Int) Element {
	rest := new(big.Int).Mod(v, f.order)
	p := new(big.Int).SetUint64(f.p)
	digit := new(big.Int)
	c := make([]uint64, f.m)
	for i := 0; i < f.m && rest.Sign() > 0; i++ {
		rest.QuoRem(rest, p, digit)
		c[i] = digit.Uint64()
	}
	return f.element(c)
}

// FromUint64 reads the base-p digits of v as coefficients
func (f *ExtensionField) FromUint64(v uint64) Element {
	return f.FromInt(new(big.Int).SetUint64(v))
}

// FromBytes creates a field element from byte array
func (f *ExtensionField) FromBytes(data []byte) Element {
	return f.FromInt(new(big.Int).SetBytes(data))
}

// FromBits creates a field element from bits with specified bit length
func (f *ExtensionField) FromBits(data []byte, bitLen int) Element {
	return f.FromInt(bitsToInt(data, bitLen))
}

// Elements iterates over all p^m elements in ascending integer order
func (f *ExtensionField) Elements() iter.Seq[Element] {
	return elementsOf(f.order, f.FromInt)
}

// BitsPerElement returns the number of bits needed for the integer representation
func (f *ExtensionField) BitsPerElement() int {
	return new(big.Int).Sub(f.order, big.NewInt(1)).BitLen()
}

// Order returns p^m
func (f *ExtensionField) Order() *big.Int {
	return new(big.Int).Set(f.order)
}

// Characteristic returns p
func (f *ExtensionField) Characteristic() *big.Int {
	return new(big.Int).SetUint64(f.p)
}

// Degree returns m
func (f *ExtensionField) Degree() int {
	return f.m
}

// Descriptor returns the structural identity GF(p^m) with its modulus
func (f *ExtensionField) Descriptor() Descriptor {
	coeffs := make([]string, len(f.modulus))
	for i, c := range f.modulus {
		coeffs[i] = fmt.Sprint(c)
	}
	return Descriptor{
		Characteristic: fmt.Sprint(f.p),
		Degree:         f.m,
		Modulus:        strings.Join(coeffs, ","),
	}
}

// Modulus returns a copy of the ascending modulus coefficients
func (f *ExtensionField) Modulus() []uint64 {
	return append([]uint64(nil), f.modulus...)
}

func (e *ExtensionFieldElement) other(b Element) *ExtensionFieldElement {
	other, ok := b.(*ExtensionFieldElement)
	if !ok || (other.field != e.field && other.field.Descriptor() != e.field.Descriptor()) {
		panic("incompatible field elements")
	}
	return other
}

// Add returns e + b in the field
func (e *ExtensionFieldElement) Add(b Element) Element {
	o := e.other(b)
	c := make([]uint64, e.field.m)
	for i := range c {
		c[i] = e.field.addMod(e.coeffs[i], o.coeffs[i])
	}
	return e.field.element(c)
}

// Sub returns e - b in the field
func (e *ExtensionFieldElement) Sub(b Element) Element {
	o := e.other(b)
	c := make([]uint64, e.field.m)
	for i := range c {
		c[i] = e.field.subMod(e.coeffs[i], o.coeffs[i])
	}
	return e.field.element(c)
}

// Neg returns -e in the field
func (e *ExtensionFieldElement) Neg() Element {
	c := make([]uint64, e.field.m)
	for i := range c {
		c[i] = e.field.subMod(0, e.coeffs[i])
	}
	return e.field.element(c)
}

// Mul returns e * b in the field: schoolbook product, then reduction by the
// monic modulus from the top degree down
func (e *ExtensionFieldElement) Mul(b Element) Element {
	return e.field.element(e.field.mul(e.coeffs, e.other(b).coeffs))
}

func (f *ExtensionField) mul(a, b []uint64) []uint64 {
	prod := make([]uint64, 2*f.m-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			prod[i+j] = f.addMod(prod[i+j], f.mulMod(x, y))
		}
	}
	for k := len(prod) - 1; k >= f.m; k-- {
		lead := prod[k]
		if lead == 0 {
			continue
		}
		for i := 0; i < f.m; i++ {
			prod[k-f.m+i] = f.subMod(prod[k-f.m+i], f.mulMod(lead, f.modulus[i]))
		}
		prod[k] = 0
	}
	return prod[:f.m]
}

// Inv returns the multiplicative inverse of e as e^(p^m - 2)
func (e *ExtensionFieldElement) Inv() Element {
	if e.IsZero() {
		panic("zero element is not invertible")
	}
	return e.Exp(new(big.Int).Sub(e.field.order, big.NewInt(2)))
}

// Exp returns e^n by square and multiply
func (e *ExtensionFieldElement) Exp(n *big.Int) Element {
	result := make([]uint64, e.field.m)
	result[0] = 1
	for i := n.BitLen() - 1; i >= 0; i-- {
		result = e.field.mul(result, result)
		if n.Bit(i) == 1 {
			result = e.field.mul(result, e.coeffs)
		}
	}
	return e.field.element(result)
}

// IsZero returns true if e equals zero
func (e *ExtensionFieldElement) IsZero() bool {
	for _, c := range e.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// IsOne returns true if e equals one
func (e *ExtensionFieldElement) IsOne() bool {
	for i, c := range e.coeffs {
		if (i == 0 && c != 1) || (i > 0 && c != 0) {
			return false
		}
	}
	return true
}

// Equal returns true if e equals b
func (e *ExtensionFieldElement) Equal(b Element) bool {
	other, ok := b.(*ExtensionFieldElement)
	if !ok || len(other.coeffs) != len(e.coeffs) {
		return false
	}
	for i := range e.coeffs {
		if e.coeffs[i] != other.coeffs[i] {
			return false
		}
	}
	return true
}

// Field returns the parent field
func (e *ExtensionFieldElement) Field() Field {
	return e.field
}

// Clone returns a copy of e
func (e *ExtensionFieldElement) Clone() Element {
	return e.field.element(append([]uint64(nil), e.coeffs...))
}

// Coeffs returns a copy of the coefficient vector
func (e *ExtensionFieldElement) Coeffs() []uint64 {
	return append([]uint64(nil), e.coeffs...)
}

// Int returns sum(coeffs[i] * p^i)
func (e *ExtensionFieldElement) Int() *big.Int {
	p := new(big.Int).SetUint64(e.field.p)
	v := new(big.Int)
	for i := len(e.coeffs) - 1; i >= 0; i-- {
		v.Mul(v, p)
		v.Add(v, new(big.Int).SetUint64(e.coeffs[i]))
	}
	return v
}

// Bytes returns the byte representation of e
func (e *ExtensionFieldElement) Bytes() []byte {
	return e.Int().Bytes()
}

// Bits returns the bit representation with specified bit length
func (e *ExtensionFieldElement) Bits(bitLen int) []byte {
	return intToBits(e.Int(), bitLen)
}

// String returns the string representation of e, e.g. "2a^2 + 1"
func (e *ExtensionFieldElement) String() string {
	var terms []string
	for i := len(e.coeffs) - 1; i >= 0; i-- {
		c := e.coeffs[i]
		if c == 0 {
			continue
		}
		switch {
		case i == 0:
			terms = append(terms, fmt.Sprint(c))
		case c == 1 && i == 1:
			terms = append(terms, "a")
		case c == 1:
			terms = append(terms, fmt.Sprintf("a^%d", i))
		case i == 1:
			terms = append(terms, fmt.Sprintf("%da", c))
		default:
			terms = append(terms, fmt.Sprintf("%da^%d", c, i))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}
