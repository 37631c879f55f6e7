package chat

import "container/heap"

// Merge combines several message sequences into a single sequence ordered by
// timestamp (oldest first). Each input is assumed to be in chronological
// order already, as exports are. Messages with equal timestamps keep the
// order of their inputs: earlier sequences win, and within a sequence the
// original order is preserved.
func Merge(seqs ...[]Message) []Message {
	total := 0
	h := &cursorHeap{}
	for i, seq := range seqs {
		total += len(seq)
		if len(seq) > 0 {
			*h = append(*h, &cursor{seq: seq, source: i})
		}
	}
	heap.Init(h)

	out := make([]Message, 0, total)
	for h.Len() > 0 {
		c := (*h)[0]
		out = append(out, c.seq[c.pos])
		c.pos++
		if c.pos == len(c.seq) {
			heap.Pop(h)
			continue
		}
		heap.Fix(h, 0)
	}
	return out
}

// cursor tracks the read position within one input sequence.
type cursor struct {
	seq    []Message
	pos    int
	source int
}

func (c *cursor) head() Message { return c.seq[c.pos] }

// cursorHeap implements heap.Interface ordered by the head message timestamp.
type cursorHeap []*cursor

func (h cursorHeap) Len() int { return len(h) }

func (h cursorHeap) Less(i, j int) bool {
	ti, tj := h[i].head().Timestamp, h[j].head().Timestamp
	if ti.Equal(tj) {
		return h[i].source < h[j].source
	}
	return ti.Before(tj)
}

func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x interface{}) {
	*h = append(*h, x.(*cursor))
}

func (h *cursorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
