package extract

import (
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// handlePool is a bounded cache of open data-file handles keyed by path,
// so extracting many entries out of the same .datN file during
// All doesn't reopen it per entry. Evicted handles are closed;
// Close closes everything still held.
type handlePool struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *os.File]
}

// defaultHandlePoolSize bounds how many distinct data files stay open at
// once; FFXIV repositories rarely interleave more than a handful of
// .datN files within one index's extraction run.
const defaultHandlePoolSize = 8

func newHandlePool() (*handlePool, error) {
	p := &handlePool{}
	cache, err := lru.NewWithEvict(defaultHandlePoolSize, func(_ string, f *os.File) {
		_ = f.Close()
	})
	if err != nil {
		return nil, err
	}
	p.cache = cache
	return p, nil
}

// Open returns an open handle for path, reusing a cached one if present.
func (p *handlePool) Open(path string) (*os.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f, ok := p.cache.Get(path); ok {
		return f, nil
	}
	f, err := os.Open(path) //nolint:gosec // path is derived from the repository's own locator, not untrusted input
	if err != nil {
		return nil, err
	}
	p.cache.Add(path, f)
	return f, nil
}

// Close closes every handle still held by the pool. Purge invokes the
// evict callback per entry, which is where the actual Close happens.
func (p *handlePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cache.Purge()
}
