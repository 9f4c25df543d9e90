package xorstream

import (
	"bytes"
	"io"
	"testing"
)

func TestConstantKeyDoubleApplyIsIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		key  byte
	}{
		{"empty", nil, 0x42},
		{"short", []byte{0x01, 0x02, 0x03}, 0x7F},
		{"zero key", []byte{0xAA, 0xBB, 0xCC}, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			once := New(bytes.NewReader(tt.data), Constant(tt.key))
			encoded, err := io.ReadAll(once)
			if err != nil {
				t.Fatalf("read once: %v", err)
			}

			twice := New(bytes.NewReader(encoded), Constant(tt.key))
			decoded, err := io.ReadAll(twice)
			if err != nil {
				t.Fatalf("read twice: %v", err)
			}

			if !bytes.Equal(decoded, tt.data) {
				t.Fatalf("double XOR not identity: got %v, want %v", decoded, tt.data)
			}
		})
	}
}

func TestReadPassesThroughZeroLength(t *testing.T) {
	t.Parallel()

	r := New(bytes.NewReader(nil), Constant(0x11))
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("got (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestPositionIndexedLookup(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0x00, 0x00, 0x00}
	lookup := func(pos int) byte { return byte(pos) }
	r := New(bytes.NewReader(data), lookup)
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{0, 1, 2, 3}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}
