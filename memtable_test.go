package lsm

import "testing"

func collectMemTable(it *MemTableIterator) []string {
	var got []string
	for it.IsValid() {
		got = append(got, string(it.Key()))
		it.Next()
	}
	return got
}

func TestMemTablePutGet(t *testing.T) {
	m := NewMemTable()
	m.Put([]byte("k1"), []byte("v1"))
	m.Put([]byte("k2"), []byte("v2"))

	v, ok := m.Get([]byte("k1"))
	if !ok || string(v) != "v1" {
		t.Fatalf("expected v1, got %q ok=%v", v, ok)
	}

	if _, ok := m.Get([]byte("missing")); ok {
		t.Fatal("missing key should not be found")
	}
}

func TestMemTableScanUnbounded(t *testing.T) {
	m := NewMemTable()
	for _, k := range []string{"c", "a", "e", "b", "d"} {
		m.Put([]byte(k), []byte(k))
	}

	got := collectMemTable(m.Scan(Unbounded, Unbounded))
	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMemTableScanBounds(t *testing.T) {
	m := NewMemTable()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		m.Put([]byte(k), []byte(k))
	}

	got := collectMemTable(m.Scan(Included([]byte("b")), Excluded([]byte("d"))))
	want := []string{"b", "c"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = collectMemTable(m.Scan(Excluded([]byte("b")), Included([]byte("d"))))
	want = []string{"c", "d"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMemTableScanEmptyRangeIsInvalid(t *testing.T) {
	m := NewMemTable()
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("z"), []byte("2"))

	it := m.Scan(Included([]byte("b")), Excluded([]byte("c")))
	if it.IsValid() {
		t.Fatal("scan over an empty range should start invalid")
	}
}

func TestMemTableFlushToBuilder(t *testing.T) {
	m := NewMemTable()
	for _, k := range []string{"banana", "apple", "cherry"} {
		m.Put([]byte(k), []byte(k+"-value"))
	}

	b := NewSsTableBuilder(4096)
	m.Flush(b)

	table := b.Build()
	it, err := NewSsTableIterator(table)
	if err != nil {
		t.Fatalf("iterating flushed table: %v", err)
	}

	expected := []string{"apple", "banana", "cherry"}
	for _, key := range expected {
		if !it.IsValid() || string(it.Key()) != key {
			t.Fatalf("expected %q, got %q valid=%v", key, it.Key(), it.IsValid())
		}
		it.Next()
	}
	if it.IsValid() {
		t.Fatal("expected exactly 3 entries")
	}
}
