package transform

import (
	"io"

	"github.com/sqpack-tools/sqex/transcoder"
)

// rewrapTransformer changes a file's container format via the bridge,
// covering flac_to_ogg.
type rewrapTransformer struct {
	fromExt string
	toExt   string
	bridge  transcoder.Bridge
}

func (t rewrapTransformer) MatchFile(path string) (ForFile, bool) {
	if !hasExt(path, t.fromExt) {
		return nil, false
	}
	return rewrapForFile{path: path, toExt: t.toExt, bridge: t.bridge}, true
}

type rewrapForFile struct {
	path   string
	toExt  string
	bridge transcoder.Bridge
}

func (f rewrapForFile) RenamedPath() string {
	return withExt(f.path, f.toExt)
}

func (f rewrapForFile) Apply(content io.Reader) (io.Reader, error) {
	return f.bridge.Rewrap(f.toExt, content)
}
