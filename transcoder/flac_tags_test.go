package transcoder

import (
	"bytes"
	"testing"
)

func TestFlacLoopTagsRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, _, ok := FlacLoopTags(bytes.NewReader([]byte("not a flac stream")))
	if ok {
		t.Fatal("expected ok=false for non-FLAC input")
	}
}

func TestLookupTagCaseInsensitive(t *testing.T) {
	t.Parallel()

	tags := [][2]string{{"ARTIST", "someone"}, {"loopstart", "1234"}, {"LOOPEND", "5678"}}

	start, ok := lookupTag(tags, "LOOPSTART")
	if !ok || start != 1234 {
		t.Fatalf("LOOPSTART = (%d, %v), want (1234, true)", start, ok)
	}
	end, ok := lookupTag(tags, "loopend")
	if !ok || end != 5678 {
		t.Fatalf("LOOPEND = (%d, %v), want (5678, true)", end, ok)
	}
	if _, ok := lookupTag(tags, "missing"); ok {
		t.Fatal("expected ok=false for missing tag")
	}
}

func TestLookupTagUnparseable(t *testing.T) {
	t.Parallel()

	tags := [][2]string{{"LOOPSTART", "not-a-number"}}
	if _, ok := lookupTag(tags, "LOOPSTART"); ok {
		t.Fatal("expected ok=false for unparseable tag value")
	}
}
