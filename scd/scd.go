// Package scd decodes FFXIV's SCD audio container into either a
// reconstructed OGG/Vorbis byte stream or a RIFF/WAVE-wrapped MS-ADPCM
// buffer, undoing whichever of the two XOR obfuscation schemes the
// container declares.
package scd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/internal/scdxor"
	"github.com/sqpack-tools/sqex/sqerr"
	"github.com/sqpack-tools/sqex/xorstream"
)

var scdMagic = []byte("SEDBSSCF")

// ErrEmptySoundData is returned when the container's data type is Empty.
var ErrEmptySoundData = errors.New("scd: sound entry has no audio data")

// DataType is the SCD sound entry's payload kind.
type DataType int32

// Recognized data types.
const (
	DataTypeEmpty   DataType = -1
	DataTypeOgg     DataType = 6
	DataTypeMsAdpcm DataType = 12
)

// EncryptionType is the OGG payload's obfuscation scheme.
type EncryptionType uint16

// Recognized encryption types.
const (
	EncryptionNone             EncryptionType = 0
	EncryptionVorbisHeaderXor  EncryptionType = 0x2002
	EncryptionInternalTableXor EncryptionType = 0x2003
)

// Format identifies the kind of byte stream Decode produced.
type Format int

// Recognized output formats.
const (
	FormatOgg Format = iota
	FormatWav
)

// Result is the decoded form of an SCD container: a target format and the
// byte stream to forward to either the extraction sink directly (OGG/WAV)
// or a TranscoderBridge (to rewrap into FLAC or another container).
type Result struct {
	Format Format
	Stream io.Reader
}

// Decode parses the full contents of an SCD file (already materialized
// into memory, since SCD's header tables require random-access seeks) and
// returns its decoded audio stream.
func Decode(data []byte) (Result, error) {
	r := bytes.NewReader(data)

	magic, err := sqbin.ReadBytes(r, len(scdMagic))
	if err != nil {
		return Result{}, sqerr.Io("reading scd magic", err)
	}
	if !bytes.Equal(magic, scdMagic) {
		return Result{}, &sqerr.InvalidFormatError{What: "scd container", Reason: fmt.Sprintf("bad magic %q", magic)}
	}

	version, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading scd version", err)
	}
	if version != 3 {
		return Result{}, &sqerr.InvalidFormatError{What: "scd container", Reason: fmt.Sprintf("version %d, want 3", version)}
	}
	if err := sqbin.SkipBytes(r, 2); err != nil {
		return Result{}, sqerr.Io("skipping scd padding", err)
	}
	headerSize, err := sqbin.ReadUint16LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading scd header size", err)
	}

	if _, err := r.Seek(int64(headerSize), io.SeekStart); err != nil {
		return Result{}, sqerr.Io("seeking to scd offsets header", err)
	}
	if err := sqbin.SkipBytes(r, 4); err != nil {
		return Result{}, sqerr.Io("skipping offsets header padding", err)
	}
	soundEntriesSize, err := sqbin.ReadUint16LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading sound entries size", err)
	}
	if soundEntriesSize != 1 {
		return Result{}, &sqerr.InvalidFormatError{
			What:   "scd offsets header",
			Reason: fmt.Sprintf("sound_entries_size %d, want 1", soundEntriesSize),
		}
	}
	if err := sqbin.SkipBytes(r, 6); err != nil {
		return Result{}, sqerr.Io("skipping offsets header padding", err)
	}
	soundEntriesOffset, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading sound entries offset", err)
	}

	if _, err := r.Seek(int64(soundEntriesOffset), io.SeekStart); err != nil {
		return Result{}, sqerr.Io("seeking to sound entries table", err)
	}
	entryTableOffset, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading entry table offset", err)
	}

	if _, err := r.Seek(int64(entryTableOffset), io.SeekStart); err != nil {
		return Result{}, sqerr.Io("seeking to sound entry header", err)
	}

	return decodeSoundEntry(r, data)
}

func decodeSoundEntry(r *bytes.Reader, data []byte) (Result, error) {
	dataSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading sound entry data size", err)
	}
	if err := sqbin.SkipBytes(r, 8); err != nil { // channels, frequency
		return Result{}, sqerr.Io("skipping sound entry fields", err)
	}
	dataTypeRaw, err := sqbin.ReadInt32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading sound entry data type", err)
	}
	if err := sqbin.SkipBytes(r, 8); err != nil { // loop_start, loop_end
		return Result{}, sqerr.Io("skipping sound entry loop fields", err)
	}
	preMarkerInfoSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading pre_marker_info_size", err)
	}
	flags, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading sound entry flags", err)
	}
	if flags&1 != 0 {
		if err := sqbin.SkipBytes(r, int(preMarkerInfoSize)); err != nil {
			return Result{}, sqerr.Io("skipping marker chunk", err)
		}
	}

	switch DataType(dataTypeRaw) {
	case DataTypeOgg:
		return decodeOgg(r, data, dataSize)
	case DataTypeMsAdpcm:
		return decodeMsAdpcm(r, dataSize)
	case DataTypeEmpty:
		return Result{}, ErrEmptySoundData
	default:
		return Result{}, &sqerr.InvalidFormatError{
			What:   "sound entry header",
			Reason: fmt.Sprintf("unrecognized data_type %d", dataTypeRaw),
		}
	}
}

func decodeOgg(r *bytes.Reader, data []byte, dataSize uint32) (Result, error) {
	encTypeRaw, err := sqbin.ReadUint16LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading ogg encryption type", err)
	}
	encType := EncryptionType(encTypeRaw)
	xorByte, err := sqbin.ReadUint8(r)
	if err != nil {
		return Result{}, sqerr.Io("reading ogg xor byte", err)
	}
	if err := sqbin.SkipBytes(r, 0xD); err != nil {
		return Result{}, sqerr.Io("skipping ogg header padding", err)
	}
	seekTableSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading seek table size", err)
	}
	vorbisHeaderSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Result{}, sqerr.Io("reading vorbis header size", err)
	}
	if err := sqbin.SkipBytes(r, 8); err != nil {
		return Result{}, sqerr.Io("skipping ogg header padding", err)
	}
	if err := sqbin.SkipBytes(r, int(seekTableSize)); err != nil {
		return Result{}, sqerr.Io("skipping seek table", err)
	}
	vorbisHeader, err := sqbin.ReadBytes(r, int(vorbisHeaderSize))
	if err != nil {
		return Result{}, sqerr.Io("reading vorbis header", err)
	}

	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Result{}, sqerr.Io("locating ogg data payload", err)
	}
	bodyTail := io.NewSectionReader(bytes.NewReader(data), dataStart, int64(dataSize))

	var vorbisStream io.Reader = bytes.NewReader(vorbisHeader)
	if encType == EncryptionVorbisHeaderXor {
		vorbisStream = xorstream.New(bytes.NewReader(vorbisHeader), xorstream.Constant(xorByte))
	}

	bodyStream := io.MultiReader(vorbisStream, bodyTail)

	var finalStream io.Reader = bodyStream
	if encType == EncryptionInternalTableXor {
		staticXor := uint8(dataSize & 0x7F) //nolint:gosec // truncation is the documented key derivation
		tableOff := uint8(dataSize & 0x3F)  //nolint:gosec // truncation is the documented key derivation
		finalStream = xorstream.New(bodyStream, scdxor.Lookup(tableOff, staticXor))
	}

	return Result{Format: FormatOgg, Stream: finalStream}, nil
}
