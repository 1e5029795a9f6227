package lsm

import "testing"

// sliceIterator is a minimal StorageIterator over an in-memory sorted
// slice of pairs, used to exercise MergeIterator/TwoMergeIterator
// without needing a real Block or SsTable underneath.
type sliceIterator struct {
	pairs [][2]string
	idx   int
}

func newSliceIterator(pairs [][2]string) *sliceIterator {
	return &sliceIterator{pairs: pairs}
}

func (s *sliceIterator) Key() []byte   { return []byte(s.pairs[s.idx][0]) }
func (s *sliceIterator) Value() []byte { return []byte(s.pairs[s.idx][1]) }
func (s *sliceIterator) IsValid() bool { return s.idx < len(s.pairs) }
func (s *sliceIterator) Next() error {
	s.idx++
	return nil
}

func collectMerge(m *MergeIterator) []string {
	var got []string
	for m.IsValid() {
		got = append(got, string(m.Key())+"="+string(m.Value()))
		m.Next()
	}
	return got
}

func TestMergeIteratorOrdersAcrossInputs(t *testing.T) {
	a := newSliceIterator([][2]string{{"a", "a1"}, {"c", "c1"}, {"e", "e1"}})
	b := newSliceIterator([][2]string{{"b", "b1"}, {"d", "d1"}})

	m := NewMergeIterator([]StorageIterator{a, b})
	got := collectMerge(m)
	want := []string{"a=a1", "b=b1", "c=c1", "d=d1", "e=e1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeIteratorLowestIndexWinsOnTie(t *testing.T) {
	a := newSliceIterator([][2]string{{"k", "from-a"}})
	b := newSliceIterator([][2]string{{"k", "from-b"}})
	c := newSliceIterator([][2]string{{"k", "from-c"}})

	m := NewMergeIterator([]StorageIterator{c, b, a})
	if !m.IsValid() || string(m.Value()) != "from-c" {
		t.Fatalf("expected the first input's value to win, got %q", m.Value())
	}
	m.Next()
	if m.IsValid() {
		t.Fatal("shared key must be emitted exactly once")
	}
}

func TestMergeIteratorAllInputsEmpty(t *testing.T) {
	a := newSliceIterator(nil)
	b := newSliceIterator(nil)

	m := NewMergeIterator([]StorageIterator{a, b})
	if m.IsValid() {
		t.Fatal("merge over all-empty inputs should be invalid")
	}
}

func TestMergeIteratorSingleInput(t *testing.T) {
	a := newSliceIterator([][2]string{{"x", "1"}, {"y", "2"}})
	m := NewMergeIterator([]StorageIterator{a})

	got := collectMerge(m)
	want := []string{"x=1", "y=2"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
