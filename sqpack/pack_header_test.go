package sqpack

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildPackHeaderBytes(platformID, size, version, contentType, date, time uint32) []byte {
	buf := make([]byte, size)
	copy(buf, packMagic)
	binary.LittleEndian.PutUint32(buf[8:], platformID)
	binary.LittleEndian.PutUint32(buf[12:], size)
	binary.LittleEndian.PutUint32(buf[16:], version)
	binary.LittleEndian.PutUint32(buf[20:], contentType)
	binary.LittleEndian.PutUint32(buf[24:], date)
	binary.LittleEndian.PutUint32(buf[28:], time)
	return buf
}

func TestReadPackHeader(t *testing.T) {
	t.Parallel()

	data := buildPackHeaderBytes(0, 1024, 1, 1, 20220101, 120000)
	h, err := ReadPackHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPackHeader() error = %v", err)
	}
	if h.Size != 1024 || h.Version != 1 || h.ContentType != 1 {
		t.Errorf("ReadPackHeader() = %+v, unexpected fields", h)
	}
	if !h.HasTimestamp() {
		t.Error("HasTimestamp() = false, want true")
	}
}

func TestReadPackHeaderMissingTimestamp(t *testing.T) {
	t.Parallel()

	data := buildPackHeaderBytes(0, 1024, 1, 1, 0, 0)
	h, err := ReadPackHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPackHeader() error = %v", err)
	}
	if h.HasTimestamp() {
		t.Error("HasTimestamp() = true, want false")
	}
}

func TestReadPackHeaderBadMagic(t *testing.T) {
	t.Parallel()

	data := buildPackHeaderBytes(0, 1024, 1, 1, 0, 0)
	data[0] = 'X'
	if _, err := ReadPackHeader(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
