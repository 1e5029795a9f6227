package lsm

import "testing"

func TestFingerprintIsDeterministic(t *testing.T) {
	a := fingerprint([]byte("hello"), []byte("world"))
	b := fingerprint([]byte("hello"), []byte("world"))
	if a != b {
		t.Fatalf("fingerprint of the same input should be stable: %d != %d", a, b)
	}
}

func TestFingerprintDiffersOnChange(t *testing.T) {
	a := fingerprint([]byte("hello"))
	b := fingerprint([]byte("hellp"))
	if a == b {
		t.Fatal("expected different fingerprints for different input")
	}
}

func TestFingerprintMatchesStreamedDigest(t *testing.T) {
	whole := fingerprint([]byte("hello"), []byte("world"))

	d := fingerprintDigest()
	d.Write([]byte("hello"))
	d.Write([]byte("world"))
	streamed := d.Sum64()

	if whole != streamed {
		t.Fatalf("one-shot and streamed fingerprints should match: %d != %d", whole, streamed)
	}
}
