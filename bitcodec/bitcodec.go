// Package bitcodec converts nonnegative integers to and from fixed-width
// bit sequences, the binary alphabet that the ctw and agent packages
// operate on.
package bitcodec

import "github.com/pkg/errors"

// Encode returns the width-bit, low-order-first binary representation of
// value. bits[0] is the least significant bit, bits[width-1] the most
// significant.
func Encode(value, width int) ([]int, error) {
	if width <= 0 {
		return nil, errors.Errorf("width %d must be positive", width)
	}
	if value < 0 {
		return nil, errors.Errorf("value %d must be nonnegative", value)
	}
	if width < 64 && value >= (1<<uint(width)) {
		return nil, errors.Errorf("value %d does not fit in %d bits", value, width)
	}

	bits := make([]int, width)
	for i := 0; i < width; i++ {
		bits[i] = (value >> uint(i)) & 1
	}
	return bits, nil
}

// Decode reads the last width bits of bits, interpreting bits[len(bits)-1]
// as the most significant bit of the returned value.
func Decode(bits []int, width int) (int, error) {
	if width <= 0 {
		return 0, errors.Errorf("width %d must be positive", width)
	}
	if len(bits) < width {
		return 0, errors.Errorf("bit list of length %d is shorter than width %d", len(bits), width)
	}

	tail := bits[len(bits)-width:]
	value := 0
	for i := 0; i < width; i++ {
		b := tail[i]
		if b != 0 && b != 1 {
			return 0, errors.Errorf("bit %d at position %d is not 0 or 1", b, i)
		}
		value |= b << uint(i)
	}
	return value, nil
}
