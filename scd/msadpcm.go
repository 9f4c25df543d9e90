package scd

import (
	"bytes"
	"encoding/binary"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/sqerr"
)

// coefficientPairCount is the number of signed 16-bit coefficient pairs
// following the MS-ADPCM fmt header.
const coefficientPairCount = 14

// msAdpcmMetaHeader is the Microsoft WAVEFORMATEX-style header embedded in
// an SCD MS-ADPCM sound entry.
type msAdpcmMetaHeader struct {
	FormatTag         uint16
	Channels          uint16
	SamplesPerSecond  uint32
	AvgBytesPerSecond uint32
	BlockAlign        uint16
	BitsPerSample     uint16
	Size              uint16
	SamplesPerBlock   uint16
	NumCoefficients   uint16
	Coefficients      [coefficientPairCount][2]int16
}

func readMsAdpcmMetaHeader(r *bytes.Reader) (msAdpcmMetaHeader, error) {
	var h msAdpcmMetaHeader

	u16Fields := []*uint16{
		&h.FormatTag, &h.Channels,
	}
	for _, f := range u16Fields {
		v, err := sqbin.ReadUint16LE(r)
		if err != nil {
			return msAdpcmMetaHeader{}, sqerr.Io("reading ms-adpcm header field", err)
		}
		*f = v
	}

	u32Fields := []*uint32{&h.SamplesPerSecond, &h.AvgBytesPerSecond}
	for _, f := range u32Fields {
		v, err := sqbin.ReadUint32LE(r)
		if err != nil {
			return msAdpcmMetaHeader{}, sqerr.Io("reading ms-adpcm header field", err)
		}
		*f = v
	}

	u16Fields2 := []*uint16{
		&h.BlockAlign, &h.BitsPerSample, &h.Size, &h.SamplesPerBlock, &h.NumCoefficients,
	}
	for _, f := range u16Fields2 {
		v, err := sqbin.ReadUint16LE(r)
		if err != nil {
			return msAdpcmMetaHeader{}, sqerr.Io("reading ms-adpcm header field", err)
		}
		*f = v
	}

	for i := range h.Coefficients {
		for j := range h.Coefficients[i] {
			v, err := sqbin.ReadUint16LE(r)
			if err != nil {
				return msAdpcmMetaHeader{}, sqerr.Io("reading ms-adpcm coefficient", err)
			}
			h.Coefficients[i][j] = int16(v) //nolint:gosec // explicit reinterpretation of the same bits
		}
	}

	return h, nil
}

// serialize writes h in the same little-endian layout it was read in,
// so the fmt chunk built from it round-trips byte for byte.
func (h msAdpcmMetaHeader) serialize() []byte {
	buf := make([]byte, 0, 22+coefficientPairCount*4)
	var tmp [4]byte

	putU16 := func(v uint16) {
		binary.LittleEndian.PutUint16(tmp[:2], v)
		buf = append(buf, tmp[:2]...)
	}
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(tmp[:4], v)
		buf = append(buf, tmp[:4]...)
	}

	putU16(h.FormatTag)
	putU16(h.Channels)
	putU32(h.SamplesPerSecond)
	putU32(h.AvgBytesPerSecond)
	putU16(h.BlockAlign)
	putU16(h.BitsPerSample)
	putU16(h.Size)
	putU16(h.SamplesPerBlock)
	putU16(h.NumCoefficients)
	for _, pair := range h.Coefficients {
		putU16(uint16(pair[0])) //nolint:gosec // explicit reinterpretation of the same bits
		putU16(uint16(pair[1])) //nolint:gosec // explicit reinterpretation of the same bits
	}

	return buf
}

func decodeMsAdpcm(r *bytes.Reader, dataSize uint32) (Result, error) {
	header, err := readMsAdpcmMetaHeader(r)
	if err != nil {
		return Result{}, err
	}

	audioData, err := sqbin.ReadBytes(r, int(dataSize))
	if err != nil {
		return Result{}, sqerr.Io("reading ms-adpcm audio data", err)
	}

	fmtChunk := header.serialize()

	var wav bytes.Buffer
	wav.WriteString("RIFF")
	wav.Write([]byte{0, 0, 0, 0}) // size placeholder, patched below
	wav.WriteString("WAVE")
	wav.WriteString("fmt ")
	writeUint32LE(&wav, uint32(len(fmtChunk)))
	wav.Write(fmtChunk)
	wav.WriteString("data")
	writeUint32LE(&wav, dataSize)
	wav.Write(audioData)

	out := wav.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return Result{Format: FormatWav, Stream: bytes.NewReader(out)}, nil
}

func writeUint32LE(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}
