// Package sqpack parses sqpack index and data files: the pack/index
// headers, the index2 hash table, and the per-entry block-compressed
// content stream.
package sqpack

import (
	"bytes"
	"fmt"
	"io"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/sqerr"
)

var packMagic = []byte("SqPack\x00\x00")

// PackHeader is the fixed-size header present at the start of every
// sqpack .index2/.dat file.
type PackHeader struct {
	PlatformID  uint32
	Size        uint32
	Version     uint32
	ContentType uint32
	Date        uint32
	Time        uint32
}

// HasTimestamp reports whether the embedded date/time pair is present, as
// opposed to the (0,0) sentinel meaning "missing".
func (h PackHeader) HasTimestamp() bool {
	return h.Date != 0 || h.Time != 0
}

// ReadPackHeader reads and validates a PackHeader from r, including
// skipping the padding out to h.Size.
func ReadPackHeader(r io.Reader) (PackHeader, error) {
	magic, err := sqbin.ReadBytes(r, len(packMagic))
	if err != nil {
		return PackHeader{}, sqerr.Io("reading pack header magic", err)
	}
	if !bytes.Equal(magic, packMagic) {
		return PackHeader{}, &sqerr.InvalidFormatError{
			What:   "pack header",
			Reason: fmt.Sprintf("bad magic %q", magic),
		}
	}

	var h PackHeader
	fields := []*uint32{&h.PlatformID, &h.Size, &h.Version, &h.ContentType, &h.Date, &h.Time}
	for _, f := range fields {
		v, err := sqbin.ReadUint32LE(r)
		if err != nil {
			return PackHeader{}, sqerr.Io("reading pack header field", err)
		}
		*f = v
	}

	const headerSize = 8 + 4 + 4 + 4 + 4 + 4 + 4
	if h.Size < headerSize {
		return PackHeader{}, &sqerr.InvalidFormatError{
			What:   "pack header",
			Reason: fmt.Sprintf("size %d smaller than fixed header %d", h.Size, headerSize),
		}
	}
	if err := sqbin.SkipBytes(r, int(h.Size-headerSize)); err != nil {
		return PackHeader{}, sqerr.Io("skipping pack header padding", err)
	}

	return h, nil
}
