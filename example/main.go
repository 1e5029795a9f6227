package main

import (
	"fmt"
	"log"

	lsm "github.com/msamant/lsmtable"
)

// This program builds a small on-disk SsTable, loads a MemTable with a
// few overlapping and non-overlapping keys, and walks both together
// through a TwoMergeIterator the way a read path layered on top of this
// package would.
func main() {
	tablePath := "example.sst"

	if err := buildTable(tablePath); err != nil {
		log.Fatalf("building table: %v", err)
	}

	mem := lsm.NewMemTable()
	mem.Put([]byte("banana"), []byte("fresh-from-memtable"))
	mem.Put([]byte("fig"), []byte("only-in-memtable"))

	file, err := lsm.OpenOSFile(tablePath)
	if err != nil {
		log.Fatalf("opening table: %v", err)
	}
	table, err := lsm.OpenSSTable(file)
	if err != nil {
		log.Fatalf("reading table meta: %v", err)
	}

	sstIter, err := lsm.NewSsTableIterator(table)
	if err != nil {
		log.Fatalf("positioning table iterator: %v", err)
	}
	memIter := mem.Scan(lsm.Unbounded, lsm.Unbounded)

	merged, err := lsm.NewTwoMergeIterator(memIter, sstIter)
	if err != nil {
		log.Fatalf("merging iterators: %v", err)
	}

	fmt.Println("merged view (memtable entries shadow table entries on overlap):")
	for merged.IsValid() {
		fmt.Printf("  %-8s = %s\n", merged.Key(), merged.Value())
		if err := merged.Next(); err != nil {
			log.Fatalf("advancing merge: %v", err)
		}
	}
}

func buildTable(path string) error {
	b := lsm.NewSsTableBuilder(128)
	pairs := [][2]string{
		{"apple", "table-apple"},
		{"banana", "table-banana-stale"},
		{"cherry", "table-cherry"},
		{"date", "table-date"},
	}
	for _, kv := range pairs {
		b.Add([]byte(kv[0]), []byte(kv[1]))
	}
	_, err := b.BuildToFile(path)
	return err
}
