package ctw

import "github.com/pkg/errors"

// history is the append-only bit sequence a Tree has observed. Context
// walks always read it newest-first, so BitFromEnd is the hot path.
type history struct {
	bits []int
}

func (h *history) Len() int {
	return len(h.bits)
}

func (h *history) Append(bit int) {
	h.bits = append(h.bits, bit)
}

// BitFromEnd returns the bit offset positions back from the end of the
// history, where offset 1 is the most recently appended bit.
func (h *history) BitFromEnd(offset int) int {
	return h.bits[len(h.bits)-offset]
}

// PopLast removes and returns the most recently appended bit. ok is false
// if the history is empty.
func (h *history) PopLast() (bit int, ok bool) {
	if len(h.bits) == 0 {
		return 0, false
	}
	last := len(h.bits) - 1
	bit = h.bits[last]
	h.bits = h.bits[:last]
	return bit, true
}

// TruncateLast removes the last count bits. It is an error to request more
// bits than the history holds.
func (h *history) TruncateLast(count int) error {
	if count < 0 {
		return errors.Errorf("bit count %d must be nonnegative", count)
	}
	if count > len(h.bits) {
		return errors.Errorf("cannot truncate %d bits from a history of length %d", count, len(h.bits))
	}
	h.bits = h.bits[:len(h.bits)-count]
	return nil
}

// Bits returns a copy of the full bit sequence, oldest first.
func (h *history) Bits() []int {
	out := make([]int, len(h.bits))
	copy(out, h.bits)
	return out
}
