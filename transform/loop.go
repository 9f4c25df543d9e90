package transform

import (
	"io"

	"github.com/sqpack-tools/sqex/transcoder"
)

// loopTransformer applies loop-point-aware playback preparation to a
// matching OGG or FLAC stream without renaming it.
type loopTransformer struct {
	extension string
	bridge    transcoder.Bridge
}

func (t loopTransformer) MatchFile(path string) (ForFile, bool) {
	if !hasExt(path, t.extension) {
		return nil, false
	}
	return loopForFile{path: path, bridge: t.bridge}, true
}

type loopForFile struct {
	path   string
	bridge transcoder.Bridge
}

func (f loopForFile) RenamedPath() string {
	return f.path
}

func (f loopForFile) Apply(content io.Reader) (io.Reader, error) {
	return f.bridge.LoopUsingMetadata(content)
}
