package sqpack

import (
	"sync"

	"github.com/sqpack-tools/sqex/sqpath"
)

// Repository caches parsed IndexStores by index path underneath a single
// sqpack directory tree, so repeated lookups across many logical paths
// don't re-parse the same index2 file.
type Repository struct {
	root string

	mu      sync.RWMutex
	indexes map[string]*IndexStore
}

// NewRepository returns a Repository rooted at sqpackRoot.
func NewRepository(sqpackRoot string) *Repository {
	return &Repository{
		root:    sqpackRoot,
		indexes: make(map[string]*IndexStore),
	}
}

// Root returns the sqpack directory this repository was constructed with.
func (r *Repository) Root() string {
	return r.root
}

// GetIndexFor returns the IndexStore covering logicalPath's category,
// expansion, and part number, loading and caching it on first use.
//
// Go's sync.RWMutex has no upgradable-read primitive (unlike the
// parking_lot lock this is grounded on), so the lookup proceeds in three
// passes: an optimistic read-locked check, then — on a miss — a parse with
// no lock held, then a write-locked recheck-and-insert. Two goroutines
// racing to load the same index will both parse it; the first insert is
// kept and the later parse is discarded, which is an acceptable one-time
// duplication rather than serializing all loads behind a single lock.
func (r *Repository) GetIndexFor(logicalPath string) (*IndexStore, error) {
	locator, err := sqpath.Parse(logicalPath)
	if err != nil {
		return nil, err
	}
	indexPath := locator.IndexPath(r.root)
	return r.loadIndexFile(indexPath)
}

// Locate parses logicalPath into the Locator identifying which index/data
// file pair it belongs to, without touching the filesystem.
func (r *Repository) Locate(logicalPath string) (sqpath.Locator, error) {
	return sqpath.Parse(logicalPath)
}

// DataPath returns the on-disk path of the given data file id within the
// category/expansion/part that logicalPath belongs to.
func (r *Repository) DataPath(logicalPath string, dataFileID uint8) (string, error) {
	locator, err := sqpath.Parse(logicalPath)
	if err != nil {
		return "", err
	}
	return locator.DataPath(r.root, dataFileID), nil
}

func (r *Repository) loadIndexFile(indexPath string) (*IndexStore, error) {
	r.mu.RLock()
	if store, ok := r.indexes[indexPath]; ok {
		r.mu.RUnlock()
		return store, nil
	}
	r.mu.RUnlock()

	store, err := LoadIndexStore(indexPath)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.indexes[indexPath]; ok {
		return existing, nil
	}
	r.indexes[indexPath] = store
	return store, nil
}
