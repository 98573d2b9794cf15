// Package ctw implements a binary Context Tree Weighting predictor: an
// incrementally updated, reversible mixture over all variable-order Markov
// models up to a fixed depth, evaluated in log space for numerical
// stability at depths of several dozen bits.
package ctw

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// Tree owns the root node of a context tree, the bit history it has been
// fed, and the size (node count) of the tree. Context walks always happen
// newest-history-bit-first; absent children are created lazily and removed
// again when a matched revert brings their visit count back to zero.
type Tree struct {
	Depth   int
	root    *Node
	history history
	size    int
	rng     *rand.Rand
}

// NewTree constructs a context tree of the given maximum depth. rng drives
// sampling in GenerateRandomSymbols[AndUpdate]; pass a seeded *rand.Rand for
// reproducible runs.
func NewTree(depth int, rng *rand.Rand) (*Tree, error) {
	if depth < 0 {
		return nil, errors.Errorf("context tree depth %d must be nonnegative", depth)
	}
	return &Tree{
		Depth: depth,
		root:  &Node{},
		size:  1,
		rng:   rng,
	}, nil
}

// Size returns the total number of nodes in the tree.
func (t *Tree) Size() int {
	return t.size
}

// HistoryLen returns the number of bits the tree has recorded.
func (t *Tree) HistoryLen() int {
	return t.history.Len()
}

// HistoryBits returns a copy of the full recorded bit history, oldest bit
// first.
func (t *Tree) HistoryBits() []int {
	return t.history.Bits()
}

// RootLogWeighted returns the current log weighted block probability at
// the root, i.e. log(P_w(history)).
func (t *Tree) RootLogWeighted() float64 {
	return t.root.logW
}

// Clear resets the tree to a single empty root node and an empty history.
func (t *Tree) Clear() {
	t.root = &Node{}
	t.history = history{}
	t.size = 1
}

// contextPath walks from the root down Depth levels, reading history bits
// newest-first, creating any missing nodes along the way. path has
// Depth+1 entries (path[0] is the root, path[Depth] the deepest node);
// branch[i] is the bit used to descend from path[i] to path[i+1].
// Requires t.history.Len() >= t.Depth.
func (t *Tree) contextPath() (path []*Node, branch []int) {
	path = make([]*Node, t.Depth+1)
	branch = make([]int, t.Depth)

	node := t.root
	path[0] = node
	for i := 0; i < t.Depth; i++ {
		bit := t.history.BitFromEnd(i + 1)
		child := node.children[bit]
		if child == nil {
			child = &Node{}
			node.children[bit] = child
			t.size++
		}
		path[i+1] = child
		branch[i] = bit
		node = child
	}
	return path, branch
}

// Update folds each bit of bits into the tree in order, learning from it,
// then appends it to the history. While the history is shorter than Depth
// there isn't yet a full context to learn from, so only the history grows.
func (t *Tree) Update(bits []int) {
	for _, s := range bits {
		if t.history.Len() >= t.Depth {
			path, _ := t.contextPath()
			for i := len(path) - 1; i >= 0; i-- {
				path[i].update(s)
			}
		}
		t.history.Append(s)
	}
}

// UpdateHistory appends bits to the history without updating any node's
// statistics. Used for bits the agent wants to condition future contexts
// on without learning from them (actions, and percepts past the learning
// period).
func (t *Tree) UpdateHistory(bits []int) {
	for _, s := range bits {
		t.history.Append(s)
	}
}

// Revert removes the last k bits from the history, restoring node
// statistics for any bits that were learned via Update and pruning any
// child created solely to hold that bit's count. Reverting past an empty
// history is a silent no-op, by design.
func (t *Tree) Revert(k int) {
	for i := 0; i < k; i++ {
		s, ok := t.history.PopLast()
		if !ok {
			return
		}
		if t.history.Len() >= t.Depth {
			path, branch := t.contextPath()
			for idx := len(path) - 1; idx >= 0; idx-- {
				path[idx].revert(s)
				if idx > 0 && path[idx].totalVisits() == 0 {
					parent := path[idx-1]
					b := branch[idx-1]
					if parent.children[b] == path[idx] {
						parent.children[b] = nil
						t.size--
					}
				}
			}
		}
	}
}

// RevertHistory shrinks the history by count bits without touching any
// node. count must not exceed the current history length.
func (t *Tree) RevertHistory(count int) error {
	return t.history.TruncateLast(count)
}

// Predict returns the probability of observing bits next, given the
// current history, without mutating the tree's externally visible state:
// it updates, reads the root's log weighted probability, then reverts.
func (t *Tree) Predict(bits []int) float64 {
	if t.history.Len()+len(bits) <= t.Depth {
		return math.Pow(0.5, float64(len(bits)))
	}

	before := t.root.logW
	t.Update(bits)
	after := t.root.logW
	t.Revert(len(bits))

	return math.Exp(after - before)
}

// GenerateRandomSymbolsAndUpdate samples n bits from the tree's predictive
// distribution, updating (learning from) the tree with each bit as it is
// drawn. The sampled bits remain in the history.
func (t *Tree) GenerateRandomSymbolsAndUpdate(n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		p1 := t.Predict([]int{1})
		bit := 0
		if t.rng.Float64() < p1 {
			bit = 1
		}
		out[i] = bit
		t.Update([]int{bit})
	}
	return out
}

// GenerateRandomSymbols samples n bits the same way
// GenerateRandomSymbolsAndUpdate does, but leaves the tree's externally
// visible state unchanged: the emitted bits are reverted before returning.
func (t *Tree) GenerateRandomSymbols(n int) []int {
	out := t.GenerateRandomSymbolsAndUpdate(n)
	t.Revert(n)
	return out
}
