package field

import "math/big"

// Packing of field elements into fixed-width bit strings. Coefficient vectors
// travel on the wire and into cache keys in this form.

// SplitBitsToFieldElements reads consecutive k-bit big-endian chunks of data as
// field elements. Trailing bits that do not fill a chunk are discarded.
func SplitBitsToFieldElements(data []byte, k int, field Field) []Element {
	if k <= 0 {
		return nil
	}
	result := make([]Element, len(data)*8/k)
	for i := range result {
		result[i] = field.FromInt(readBits(data, i*k, k))
	}
	return result
}

// FieldElementsToBytes packs elements into k bits each, big-endian, padding the
// last byte with zero bits
func FieldElementsToBytes(elements []Element, k int) []byte {
	result := make([]byte, (len(elements)*k+7)/8)
	for i, element := range elements {
		v := element.Int()
		for bit := 0; bit < k; bit++ {
			if v.Bit(k-1-bit) == 1 {
				dst := i*k + bit
				result[dst/8] |= 1 << (7 - dst%8)
			}
		}
	}
	return result
}

// readBits returns the n bits of data starting at bit offset start
func readBits(data []byte, start, n int) *big.Int {
	val := big.NewInt(0)
	for bit := 0; bit < n; bit++ {
		src := start + bit
		if src/8 < len(data) && data[src/8]&(1<<(7-src%8)) != 0 {
			val.SetBit(val, n-1-bit, 1)
		}
	}
	return val
}

// bitsToInt reads exactly bitLen big-endian bits from data
func bitsToInt(data []byte, bitLen int) *big.Int {
	return readBits(data, 0, bitLen)
}

// intToBits writes the low bitLen bits of v big-endian
func intToBits(v *big.Int, bitLen int) []byte {
	result := make([]byte, (bitLen+7)/8)
	for i := 0; i < bitLen; i++ {
		if v.Bit(bitLen-1-i) == 1 {
			result[i/8] |= 1 << (7 - i%8)
		}
	}
	return result
}
