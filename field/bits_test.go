package field

import (
	"bytes"
	"math/big"
	"testing"
)

func TestSplitBitsToFieldElementsAndBack(t *testing.T) {
	field := MustPrimeField(4_294_967_311)

	testCases := []struct {
		data []byte
		k    int
	}{
		{[]byte{0x12, 0x34, 0x56, 0x78}, 16},
		{[]byte{0xAB, 0xCD}, 8},
		{[]byte{0xFF}, 4},
		{[]byte{0x12, 0x34, 0x56}, 12},
	}

	for _, tc := range testCases {
		elements := SplitBitsToFieldElements(tc.data, tc.k, field)
		if len(elements) != len(tc.data)*8/tc.k {
			t.Errorf("expected %d elements, got %d for data %x, k=%d",
				len(tc.data)*8/tc.k, len(elements), tc.data, tc.k)
		}
		if recovered := FieldElementsToBytes(elements, tc.k); !bytes.Equal(recovered, tc.data) {
			t.Errorf("round trip of %x with k=%d gave %x", tc.data, tc.k, recovered)
		}
	}
}

func TestFieldElementsToBytesPadding(t *testing.T) {
	field := MustPrimeField(7)
	// three 3-bit values 1, 2, 6 -> 001 010 110 -> 0x2B, 0x00
	elements := []Element{field.FromUint64(1), field.FromUint64(2), field.FromUint64(6)}
	got := FieldElementsToBytes(elements, 3)
	if !bytes.Equal(got, []byte{0x2B, 0x00}) {
		t.Errorf("packed = %x, expected 2b00", got)
	}
	back := SplitBitsToFieldElements(got, 3, field)
	for i, e := range elements {
		if !back[i].Equal(e) {
			t.Errorf("element %d = %s, expected %s", i, back[i], e)
		}
	}
}

func TestBitsRoundTrip(t *testing.T) {
	field := NewBinaryFieldGF2_8()
	for v := uint64(0); v < 256; v += 17 {
		e := field.FromUint64(v)
		if got := field.FromBits(e.Bits(8), 8); !got.Equal(e) {
			t.Errorf("FromBits(Bits(%s)) = %s", e, got)
		}
	}
	if got := intToBits(big.NewInt(5), 4); !bytes.Equal(got, []byte{0x50}) {
		t.Errorf("intToBits(5, 4) = %x", got)
	}
}
