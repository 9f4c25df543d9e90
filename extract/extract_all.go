package extract

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sqpack-tools/sqex/sqpack"
	"github.com/sqpack-tools/sqex/transform"
)

// All extracts every entry in the index at indexPath. Each entry's
// logical path is synthesized as "<hash_hex>.<outputExtension>" and its
// output base as "<index_basename>/<hash_hex>", since index2 entries
// carry only a hash, never the original logical path.
//
// Entries are extracted concurrently across a GOMAXPROCS-sized worker
// pool sharing one handlePool, which holds one open handle per data file. When forceExtract is false,
// the first entry to fail stops new work from starting and its error is
// returned; already-running entries are allowed to finish. When true,
// failures are logged to stderr and extraction continues through the
// rest of the index.
func All(indexPath, outputExtension string, overwrite, forceExtract bool, chain transform.Chain) error {
	index, err := sqpack.LoadIndexStore(indexPath)
	if err != nil {
		return err
	}

	pool, err := newHandlePool()
	if err != nil {
		return err
	}
	defer pool.Close()

	entries := index.Entries()
	outputDir := filepath.Base(indexPath)

	jobs := make(chan sqpack.Index2Entry)
	firstErr := make(chan error, 1)
	var aborted atomic.Bool

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				if aborted.Load() {
					continue
				}
				err := extractEntry(pool, indexPath, entry, outputDir, outputExtension, overwrite, chain)
				if err == nil {
					continue
				}
				wrapped := fmt.Errorf("extracting entry %08x: %w", entry.Hash, err)
				if forceExtract {
					log.Println(wrapped)
					continue
				}
				if aborted.CompareAndSwap(false, true) {
					firstErr <- wrapped
				}
			}
		}()
	}

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)
	wg.Wait()
	close(firstErr)

	return <-firstErr
}

// extractEntry extracts one index entry using a handle borrowed from
// pool, writing under outputDir/<hash_hex>.
func extractEntry(
	pool *handlePool,
	indexPath string,
	entry sqpack.Index2Entry,
	outputDir, outputExtension string,
	overwrite bool,
	chain transform.Chain,
) error {
	dataPath := dataPathForIndex(indexPath, entry.DataFileID)
	data, err := pool.Open(dataPath)
	if err != nil {
		return fmt.Errorf("opening data file %q: %w", dataPath, err)
	}

	hashHex := fmt.Sprintf("%X", entry.Hash)
	logicalPath := hashHex + "." + outputExtension

	finalPath, content, err := readAndTransform(data, int64(entry.OffsetBytes), logicalPath, chain)
	if err != nil {
		return err
	}

	outputBase := filepath.Join(outputDir, hashHex)
	outputPath := outputBase + filepath.Ext(finalPath)
	return writeOutput(outputPath, content, overwrite)
}

// dataPathForIndex derives the data file path for dataFileID by replacing
// the ".index2" suffix of indexPath's filename with ".datN", mirroring how
// entries' data_file_id field is resolved to a file on disk.
func dataPathForIndex(indexPath string, dataFileID uint8) string {
	dir := filepath.Dir(indexPath)
	base := filepath.Base(indexPath)
	renamed := strings.Replace(base, ".index2", fmt.Sprintf(".dat%d", dataFileID), 1)
	return filepath.Join(dir, renamed)
}
