package lsm

import (
	"bytes"
	"container/heap"
)

// heapItem pairs a StorageIterator with its input index, used both to
// order the merge heap and to break ties between equal keys (smaller
// index wins).
type heapItem struct {
	idx  int
	iter StorageIterator
}

func lessItem(a, b *heapItem) bool {
	if c := bytes.Compare(a.iter.Key(), b.iter.Key()); c != 0 {
		return c < 0
	}
	return a.idx < b.idx
}

// iterHeap is a container/heap.Interface min-heap over heapItems,
// ordered by (key, index).
type iterHeap []*heapItem

func (h iterHeap) Len() int            { return len(h) }
func (h iterHeap) Less(i, j int) bool  { return lessItem(h[i], h[j]) }
func (h iterHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *iterHeap) Push(x any)         { *h = append(*h, x.(*heapItem)) }
func (h *iterHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MergeIterator merges N iterators of the same kind, indexed 0..N-1 by
// input order. It produces keys in strictly non-decreasing order; when
// multiple inputs share the current key, the value from the
// smallest-indexed input wins and every other input holding that key is
// advanced past it, so it's emitted only once.
type MergeIterator struct {
	heap    iterHeap
	current *heapItem
}

// NewMergeIterator builds a merge over iters, already positioned at the
// overall smallest valid key. Iterators that are already invalid are
// excluded from the heap.
func NewMergeIterator(iters []StorageIterator) *MergeIterator {
	h := make(iterHeap, 0, len(iters))
	m := &MergeIterator{}

	for idx, it := range iters {
		if it.IsValid() {
			h = append(h, &heapItem{idx: idx, iter: it})
		}
	}
	heap.Init(&h)

	if len(h) > 0 {
		m.current = heap.Pop(&h).(*heapItem)
	} else if len(iters) > 0 {
		// Every input was invalid; keep one around (still invalid) so
		// IsValid has something to ask.
		m.current = &heapItem{idx: 0, iter: iters[0]}
	}

	m.heap = h
	return m
}

// Key returns the current key. Precondition: IsValid().
func (m *MergeIterator) Key() []byte { return m.current.iter.Key() }

// Value returns the current value. Precondition: IsValid().
func (m *MergeIterator) Value() []byte { return m.current.iter.Value() }

// IsValid reports whether the merge has a current entry.
func (m *MergeIterator) IsValid() bool {
	return m.current != nil && m.current.iter.IsValid()
}

// Next advances the merge by one key. Any input whose key equals the
// current one is also advanced, so the key is emitted exactly once; an
// error from any such input surfaces immediately, with that input
// dropped from the merge set so the read doesn't livelock.
func (m *MergeIterator) Next() error {
	for len(m.heap) > 0 {
		top := m.heap[0]
		if !bytes.Equal(top.iter.Key(), m.current.iter.Key()) {
			break
		}

		if err := top.iter.Next(); err != nil {
			heap.Remove(&m.heap, 0)
			return err
		}
		if !top.iter.IsValid() {
			heap.Remove(&m.heap, 0)
		} else {
			heap.Fix(&m.heap, 0)
		}
	}

	if err := m.current.iter.Next(); err != nil {
		return err
	}

	if !m.current.iter.IsValid() {
		if len(m.heap) > 0 {
			m.current = heap.Pop(&m.heap).(*heapItem)
		}
		return nil
	}

	if len(m.heap) > 0 && lessItem(m.heap[0], m.current) {
		m.current, m.heap[0] = m.heap[0], m.current
		heap.Fix(&m.heap, 0)
	}
	return nil
}
