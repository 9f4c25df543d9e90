// Package transcoder bridges decoded audio streams to an external
// transcoder process for container rewraps and loop-point-aware playback
// preparation. The pipeline core depends only on the Bridge contract; the
// concrete FFmpegBridge is one implementation of it.
package transcoder

import "io"

// Bridge is the external collaborator the extraction pipeline hands
// decoded-but-not-yet-final audio streams to.
type Bridge interface {
	// Rewrap transcodes in into targetFormat (a container name such as
	// "flac", "ogg", or "wav") and returns the resulting stream.
	Rewrap(targetFormat string, in io.Reader) (io.Reader, error)

	// LoopUsingMetadata probes in for embedded LOOPSTART/LOOPEND tags and,
	// if present, returns a stream that plays one loop then fades out over
	// five seconds near the end. If no loop point is present, the output
	// is in unchanged.
	LoopUsingMetadata(in io.Reader) (io.Reader, error)
}
