package lsm

import "testing"

func collectTwoMerge(it *TwoMergeIterator) []string {
	var got []string
	for it.IsValid() {
		got = append(got, string(it.Key())+"="+string(it.Value()))
		it.Next()
	}
	return got
}

func TestTwoMergeIteratorMergesDisjointKeys(t *testing.T) {
	a := newSliceIterator([][2]string{{"a", "a1"}, {"c", "c1"}})
	b := newSliceIterator([][2]string{{"b", "b1"}, {"d", "d1"}})

	it, err := NewTwoMergeIterator(a, b)
	if err != nil {
		t.Fatalf("NewTwoMergeIterator: %v", err)
	}

	got := collectTwoMerge(it)
	want := []string{"a=a1", "b=b1", "c=c1", "d=d1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTwoMergeIteratorAPrefersOnTie(t *testing.T) {
	a := newSliceIterator([][2]string{{"k", "from-a"}})
	b := newSliceIterator([][2]string{{"k", "from-b"}})

	it, err := NewTwoMergeIterator(a, b)
	if err != nil {
		t.Fatalf("NewTwoMergeIterator: %v", err)
	}
	if !it.IsValid() || string(it.Value()) != "from-a" {
		t.Fatalf("expected a's value to win the tie, got %q", it.Value())
	}
	if err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if it.IsValid() {
		t.Fatal("shared key must be emitted exactly once")
	}
}

func TestTwoMergeIteratorOneSideEmpty(t *testing.T) {
	a := newSliceIterator(nil)
	b := newSliceIterator([][2]string{{"x", "1"}, {"y", "2"}})

	it, err := NewTwoMergeIterator(a, b)
	if err != nil {
		t.Fatalf("NewTwoMergeIterator: %v", err)
	}
	got := collectTwoMerge(it)
	want := []string{"x=1", "y=2"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTwoMergeIteratorBothEmpty(t *testing.T) {
	a := newSliceIterator(nil)
	b := newSliceIterator(nil)

	it, err := NewTwoMergeIterator(a, b)
	if err != nil {
		t.Fatalf("NewTwoMergeIterator: %v", err)
	}
	if it.IsValid() {
		t.Fatal("merge of two empty inputs should be invalid")
	}
}
