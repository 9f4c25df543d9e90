package transform

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildPlainOggScd returns a minimal, unencrypted SCD container (enc_type
// 0) wrapping a tiny synthetic OGG payload, for exercising scd_to_ogg
// end to end through the transformer chain.
func buildPlainOggScd(t *testing.T) []byte {
	t.Helper()

	vorbisHeader := []byte("OggS-fixture-header")
	audio := []byte("fixture-audio-body")

	var buf bytes.Buffer
	putU16 := func(v uint16) {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], v)
		buf.Write(tmp[:])
	}
	putU32 := func(v uint32) {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], v)
		buf.Write(tmp[:])
	}

	buf.WriteString("SEDBSSCF")
	putU32(3) // version
	buf.Write([]byte{0, 0})
	putU16(16) // header_size

	buf.Write(make([]byte, 4))
	putU16(1)
	buf.Write(make([]byte, 6))
	putU32(32) // sound_entries_offset

	putU32(40) // entry_table_offset
	buf.Write(make([]byte, 4))

	// SoundEntryHeader at offset 40.
	putU32(uint32(len(audio))) // data_size
	buf.Write(make([]byte, 8)) // channels, frequency
	putU32(6)                  // data_type = Ogg
	buf.Write(make([]byte, 8)) // loop_start, loop_end
	putU32(0)                  // pre_marker_info_size
	putU32(0)                  // flags

	// OggMetaHeader.
	putU16(0) // encryption_type = None
	buf.WriteByte(0)
	buf.Write(make([]byte, 0xD))
	putU32(0) // seek_table_size
	putU32(uint32(len(vorbisHeader)))
	buf.Write(make([]byte, 8))
	buf.Write(vorbisHeader)
	buf.Write(audio)

	return buf.Bytes()
}
