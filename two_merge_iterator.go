package lsm

import "bytes"

// TwoMergeIterator merges two heterogeneous StorageIterator streams,
// A and B, into one non-decreasing key order. When both sides hold the
// same key, A's value wins and B is advanced past it.
type TwoMergeIterator struct {
	a, b    StorageIterator
	chooseA bool
}

// NewTwoMergeIterator builds a merge over a and b, both already
// positioned at their first entry (or invalid, if empty).
func NewTwoMergeIterator(a, b StorageIterator) (*TwoMergeIterator, error) {
	it := &TwoMergeIterator{a: a, b: b}
	it.chooseA = it.pickA()
	if err := it.skipB(); err != nil {
		return nil, err
	}
	return it, nil
}

// pickA reports whether a should supply the current entry: a is
// preferred whenever it's valid and either b is invalid or a's key is
// <= b's key.
func (it *TwoMergeIterator) pickA() bool {
	if !it.a.IsValid() {
		return false
	}
	if !it.b.IsValid() {
		return true
	}
	return bytes.Compare(it.a.Key(), it.b.Key()) <= 0
}

// skipB advances b past any key equal to a's current key, so a shared
// key is emitted only once, from a.
func (it *TwoMergeIterator) skipB() error {
	if !it.a.IsValid() || !it.b.IsValid() {
		return nil
	}
	for it.b.IsValid() && bytes.Equal(it.a.Key(), it.b.Key()) {
		if err := it.b.Next(); err != nil {
			return err
		}
	}
	return nil
}

// Key returns the current key. Precondition: IsValid().
func (it *TwoMergeIterator) Key() []byte {
	if it.chooseA {
		return it.a.Key()
	}
	return it.b.Key()
}

// Value returns the current value. Precondition: IsValid().
func (it *TwoMergeIterator) Value() []byte {
	if it.chooseA {
		return it.a.Value()
	}
	return it.b.Value()
}

// IsValid reports whether the merge has a current entry.
func (it *TwoMergeIterator) IsValid() bool {
	if it.chooseA {
		return it.a.IsValid()
	}
	return it.b.IsValid()
}

// Next advances whichever side currently supplies the entry, then
// re-derives which side leads and skips any duplicate key on b.
func (it *TwoMergeIterator) Next() error {
	if it.chooseA {
		if err := it.a.Next(); err != nil {
			return err
		}
	} else {
		if err := it.b.Next(); err != nil {
			return err
		}
	}

	if err := it.skipB(); err != nil {
		return err
	}
	it.chooseA = it.pickA()
	return nil
}
