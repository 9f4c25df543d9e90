// Package extract drives a single extraction: resolving a logical path to
// its index entry, decompressing the entry's content, running it through
// a transformer chain, and writing the result to disk.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/sqpack-tools/sqex/sqpack"
	"github.com/sqpack-tools/sqex/sqpath"
	"github.com/sqpack-tools/sqex/transform"
)

// File extracts one logical path out of repo, applying chain, and writes
// the result under outputBase with the chain's final extension appended.
// Each call owns its own data-file handle, opened and closed within the
// call.
func File(repo *sqpack.Repository, logicalPath, outputBase string, overwrite bool, chain transform.Chain) error {
	index, err := repo.GetIndexFor(logicalPath)
	if err != nil {
		return err
	}
	entry, err := index.Get(sqpath.Hash(logicalPath))
	if err != nil {
		return err
	}

	dataPath, err := repo.DataPath(logicalPath, entry.DataFileID)
	if err != nil {
		return err
	}

	data, err := os.Open(dataPath) //nolint:gosec // dataPath is derived from the repository's own locator, not untrusted input
	if err != nil {
		return fmt.Errorf("opening data file %q: %w", dataPath, err)
	}
	defer func() { _ = data.Close() }()

	finalPath, content, err := readAndTransform(data, int64(entry.OffsetBytes), logicalPath, chain)
	if err != nil {
		return err
	}

	outputPath := outputBase + filepath.Ext(finalPath)
	return writeOutput(outputPath, content, overwrite)
}

// readAndTransform parses the EntryHeader at entryStart, streams and
// fully materializes the decompressed content (transformers like the SCD
// decoder need seekable input), and runs it through chain.
//
// data is taken as an io.ReaderAt rather than a shared io.ReadSeeker so
// All can fan entries sharing one data-file handle across
// goroutines: os.File.ReadAt has no shared seek position, so concurrent
// callers never race on it the way concurrent Seek+Read would. The
// section is rebased to entryStart so ReadEntryHeader's own offset
// bookkeeping stays entry-relative.
func readAndTransform(data io.ReaderAt, entryStart int64, logicalPath string, chain transform.Chain) (string, io.Reader, error) {
	section := io.NewSectionReader(data, entryStart, math.MaxInt64-entryStart)

	header, err := sqpack.ReadEntryHeader(section, 0)
	if err != nil {
		return "", nil, err
	}

	blockReader := sqpack.NewBlockReader(section, header)
	content, err := io.ReadAll(blockReader)
	if err != nil {
		return "", nil, fmt.Errorf("reading entry content: %w", err)
	}

	return chain.Apply(logicalPath, bytes.NewReader(content))
}

func writeOutput(outputPath string, content io.Reader, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(outputPath, flags, 0o600) //nolint:gosec // output path is derived from caller-controlled arguments, not untrusted input
	if err != nil {
		return fmt.Errorf("opening output %q: %w", outputPath, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, content); err != nil {
		return fmt.Errorf("writing output %q: %w", outputPath, err)
	}
	return nil
}
