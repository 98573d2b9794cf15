package bitcodec

import "testing"

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for v := 0; v < 256; v++ {
		v := v
		t.Run("", func(t *testing.T) {
			t.Parallel()
			bits, err := Encode(v, 8)
			if err != nil {
				t.Fatalf("Encode(%d, 8): %v", v, err)
			}
			got, err := Decode(bits, 8)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != v {
				t.Errorf("round trip: got %d, want %d", got, v)
			}
		})
	}
}

func TestEncodeEndianness(t *testing.T) {
	t.Parallel()
	// 5 = 0b101, low-order-first: bit0=1, bit1=0, bit2=1
	bits, err := Encode(5, 3)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []int{1, 0, 1}
	if len(bits) != len(want) {
		t.Fatalf("len(bits) = %d, want %d", len(bits), len(want))
	}
	for i := range want {
		if bits[i] != want[i] {
			t.Errorf("bits[%d] = %d, want %d", i, bits[i], want[i])
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := Encode(-1, 4); err == nil {
		t.Error("Encode(-1, 4): expected error")
	}
	if _, err := Encode(16, 4); err == nil {
		t.Error("Encode(16, 4): expected error, 16 does not fit in 4 bits")
	}
	if _, err := Encode(0, 0); err == nil {
		t.Error("Encode(0, 0): expected error for non-positive width")
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	t.Parallel()
	if _, err := Decode([]int{1, 0}, 3); err == nil {
		t.Error("Decode with short input: expected error")
	}
}

func TestDecodeReadsTrailingBits(t *testing.T) {
	t.Parallel()
	// Only the last 3 bits should matter, regardless of what precedes them.
	bits := []int{1, 1, 1, 1, 0, 1}
	got, err := Decode(bits, 3)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want, _ := Decode([]int{1, 0, 1}, 3); got != want {
		t.Errorf("Decode(%v, 3) = %d, want %d", bits, got, want)
	}
}

func TestEncodeDecodeInverse(t *testing.T) {
	t.Parallel()
	bits := []int{1, 0, 1, 1}
	v, err := Decode(bits, len(bits))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := Encode(v, len(bits))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := range bits {
		if got[i] != bits[i] {
			t.Errorf("Encode(Decode(bits)) = %v, want %v", got, bits)
			break
		}
	}
}
