package scdxor

import "testing"

func TestTableLength(t *testing.T) {
	t.Parallel()

	if len(Table) != 256 {
		t.Fatalf("len(Table) = %d, want 256", len(Table))
	}
}

func TestLookupWrapsAroundTable(t *testing.T) {
	t.Parallel()

	lookup := Lookup(0, 0)
	if got, want := lookup(0), Table[0]; got != want {
		t.Errorf("lookup(0) = %#02x, want %#02x", got, want)
	}
	if got, want := lookup(256), Table[0]; got != want {
		t.Errorf("lookup(256) = %#02x, want %#02x (wraparound)", got, want)
	}
}

func TestLookupAppliesOffsetAndStaticXor(t *testing.T) {
	t.Parallel()

	const offset, static = uint8(10), uint8(0x5A)
	lookup := Lookup(offset, static)

	got := lookup(3)
	want := Table[13] ^ static
	if got != want {
		t.Errorf("lookup(3) = %#02x, want %#02x", got, want)
	}
}
