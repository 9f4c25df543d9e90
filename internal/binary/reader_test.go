package binary

import (
	"bytes"
	"io"
	"testing"
)

func TestReadUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    uint8
		wantErr bool
	}{
		{"zero byte", []byte{0x00}, 0x00, false},
		{"high byte", []byte{0xFF}, 0xFF, false},
		{"empty", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadUint8(bytes.NewReader(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadUint8() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReadUint8() = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestReadUint16LE(t *testing.T) {
	t.Parallel()

	got, err := ReadUint16LE(bytes.NewReader([]byte{0x34, 0x12}))
	if err != nil {
		t.Fatalf("ReadUint16LE() error = %v", err)
	}
	if want := uint16(0x1234); got != want {
		t.Errorf("ReadUint16LE() = 0x%04X, want 0x%04X", got, want)
	}
}

func TestReadUint16LEShortRead(t *testing.T) {
	t.Parallel()

	if _, err := ReadUint16LE(bytes.NewReader([]byte{0x34})); err == nil {
		t.Fatal("expected error on short read")
	}
}

func TestReadUint32LE(t *testing.T) {
	t.Parallel()

	got, err := ReadUint32LE(bytes.NewReader([]byte{0x78, 0x56, 0x34, 0x12}))
	if err != nil {
		t.Fatalf("ReadUint32LE() error = %v", err)
	}
	if want := uint32(0x12345678); got != want {
		t.Errorf("ReadUint32LE() = 0x%08X, want 0x%08X", got, want)
	}
}

func TestReadInt32LE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want int32
	}{
		{"positive", []byte{0x01, 0x00, 0x00, 0x00}, 1},
		{"negative one", []byte{0xFF, 0xFF, 0xFF, 0xFF}, -1},
		{"min int32", []byte{0x00, 0x00, 0x00, 0x80}, -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadInt32LE(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("ReadInt32LE() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadInt32LE() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadBytes(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	reader := bytes.NewReader(data)

	got, err := ReadBytes(reader, 3)
	if err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if want := []byte{0x00, 0x01, 0x02}; !bytes.Equal(got, want) {
		t.Errorf("ReadBytes() = %v, want %v", got, want)
	}

	rest, err := ReadBytes(reader, 3)
	if err != nil {
		t.Fatalf("ReadBytes() second call error = %v", err)
	}
	if want := []byte{0x03, 0x04, 0x05}; !bytes.Equal(rest, want) {
		t.Errorf("ReadBytes() second call = %v, want %v", rest, want)
	}
}

func TestReadBytesPastEnd(t *testing.T) {
	t.Parallel()

	if _, err := ReadBytes(bytes.NewReader([]byte{0x00, 0x01}), 5); err == nil {
		t.Fatal("expected error reading past end of reader")
	}
}

func TestReadBytesZeroLength(t *testing.T) {
	t.Parallel()

	got, err := ReadBytes(bytes.NewReader([]byte{0x00}), 0)
	if err != nil {
		t.Fatalf("ReadBytes(0) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadBytes(0) = %v, want empty", got)
	}
}

func TestSkipBytes(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	reader := bytes.NewReader(data)

	if err := SkipBytes(reader, 3); err != nil {
		t.Fatalf("SkipBytes() error = %v", err)
	}

	rest, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if want := []byte{0x03, 0x04, 0x05}; !bytes.Equal(rest, want) {
		t.Errorf("after SkipBytes(), remaining = %v, want %v", rest, want)
	}
}

func TestSkipBytesZeroOrNegative(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0x01}
	reader := bytes.NewReader(data)

	if err := SkipBytes(reader, 0); err != nil {
		t.Fatalf("SkipBytes(0) error = %v", err)
	}
	if err := SkipBytes(reader, -1); err != nil {
		t.Fatalf("SkipBytes(-1) error = %v", err)
	}

	rest, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(rest, data) {
		t.Errorf("SkipBytes(0/-1) consumed input: remaining = %v, want %v", rest, data)
	}
}

func TestSkipBytesPastEnd(t *testing.T) {
	t.Parallel()

	if err := SkipBytes(bytes.NewReader([]byte{0x00}), 5); err == nil {
		t.Fatal("expected error skipping past end of reader")
	}
}
