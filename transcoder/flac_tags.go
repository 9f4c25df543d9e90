package transcoder

import (
	"io"
	"strconv"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"
)

// FlacLoopTags reads LOOPSTART/LOOPEND Vorbis-comment tags directly out of
// a FLAC stream, letting FFmpegBridge.LoopUsingMetadata skip one ffprobe
// round trip for inputs that are already FLAC. Returns ok=false if either
// tag is absent or unparseable, in which case the caller should fall back
// to probing with ffprobe.
func FlacLoopTags(r io.Reader) (loopStart, loopEnd uint32, ok bool) {
	stream, err := flac.Parse(r)
	if err != nil {
		return 0, 0, false
	}
	defer stream.Close()

	for _, block := range stream.Blocks {
		comment, isComment := block.Body.(*meta.VorbisComment)
		if !isComment {
			continue
		}
		start, hasStart := lookupTag(comment.Tags, "LOOPSTART")
		end, hasEnd := lookupTag(comment.Tags, "LOOPEND")
		if hasStart && hasEnd {
			return start, end, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

func lookupTag(tags [][2]string, name string) (uint32, bool) {
	for _, tag := range tags {
		if !strings.EqualFold(tag[0], name) {
			continue
		}
		v, err := strconv.ParseUint(tag[1], 10, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	return 0, false
}
