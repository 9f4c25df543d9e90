// Package transform implements the extension-matched, ordered pipeline of
// renaming byte-stream filters applied to an extracted asset: SCD→OGG/
// FLAC/WAV decoding, loop-point playback preparation, and FLAC→OGG rewrap.
package transform

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sqpack-tools/sqex/transcoder"
)

// Tag names one of the known transformers.
type Tag string

// The closed set of known transformer tags.
const (
	TagScdToOgg  Tag = "scd_to_ogg"
	TagScdToFlac Tag = "scd_to_flac"
	TagScdToWav  Tag = "scd_to_wav"
	TagLoopOgg   Tag = "loop_ogg"
	TagLoopFlac  Tag = "loop_flac"
	TagFlacToOgg Tag = "flac_to_ogg"
)

// Transformer matches a logical path against an extension rule and, if it
// applies, produces a file-specific transformer bound to that path.
type Transformer interface {
	MatchFile(path string) (ForFile, bool)
}

// ForFile is a transformer bound to one matched path.
type ForFile interface {
	// RenamedPath returns the path after this transformer's rename rule.
	RenamedPath() string
	// Apply rewrites the byte stream.
	Apply(content io.Reader) (io.Reader, error)
}

// New constructs the transformer named by tag, wired to bridge for the
// transformers that need an external rewrap/loop collaborator.
func New(tag Tag, bridge transcoder.Bridge) (Transformer, error) {
	switch tag {
	case TagScdToOgg:
		return scdTransformer{targetExt: "ogg", bridge: bridge}, nil
	case TagScdToFlac:
		return scdTransformer{targetExt: "flac", bridge: bridge}, nil
	case TagScdToWav:
		return scdTransformer{targetExt: "wav", bridge: bridge}, nil
	case TagLoopOgg:
		return loopTransformer{extension: "ogg", bridge: bridge}, nil
	case TagLoopFlac:
		return loopTransformer{extension: "flac", bridge: bridge}, nil
	case TagFlacToOgg:
		return rewrapTransformer{fromExt: "flac", toExt: "ogg", bridge: bridge}, nil
	default:
		return nil, fmt.Errorf("transform: unknown tag %q", tag)
	}
}

// Chain is an ordered, caller-provided sequence of transformers.
type Chain []Transformer

// Apply iterates the chain in order. A transformer that does not match
// the current path is silently skipped; one that matches updates the
// current path to its rename result and replaces the stream with its
// filter's output. The final path determines the output file extension.
func (c Chain) Apply(path string, content io.Reader) (string, io.Reader, error) {
	current := path
	stream := content
	for _, t := range c {
		forFile, matched := t.MatchFile(current)
		if !matched {
			continue
		}
		out, err := forFile.Apply(stream)
		if err != nil {
			return "", nil, err
		}
		current = forFile.RenamedPath()
		stream = out
	}
	return current, stream, nil
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), "."+ext)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
