package sqpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sqpack-tools/sqex/sqpath"
)

func TestRepositoryGetIndexFor(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "ffxiv"), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	entry := Index2Entry{Hash: sqpath.Hash("music/ffxiv/bgm_system_title.scd"), DataFileID: 0, OffsetBytes: 0x80}
	data := buildIndex2File(t, []Index2Entry{entry})
	indexPath := filepath.Join(root, "ffxiv", "0c0000.win32.index2")
	if err := os.WriteFile(indexPath, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	repo := NewRepository(root)

	store, err := repo.GetIndexFor("music/ffxiv/BGM_System_Title.scd")
	if err != nil {
		t.Fatalf("GetIndexFor() error = %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}

	// Second lookup should hit the cache and return the same store.
	store2, err := repo.GetIndexFor("music/ffxiv/BGM_System_Title.scd")
	if err != nil {
		t.Fatalf("GetIndexFor() second call error = %v", err)
	}
	if store != store2 {
		t.Error("GetIndexFor() did not return cached store on second call")
	}
}

func TestRepositoryGetIndexForInvalidPath(t *testing.T) {
	t.Parallel()

	repo := NewRepository(t.TempDir())
	if _, err := repo.GetIndexFor("nope"); err == nil {
		t.Fatal("expected error for malformed logical path")
	}
}

func TestRepositoryDataPath(t *testing.T) {
	t.Parallel()

	repo := NewRepository("/repo")
	got, err := repo.DataPath("music/ffxiv/bgm_system_title.scd", 2)
	if err != nil {
		t.Fatalf("DataPath() error = %v", err)
	}
	want := filepath.Join("/repo", "ffxiv", "0c0000.win32.dat2")
	if got != want {
		t.Errorf("DataPath() = %q, want %q", got, want)
	}
}

func TestRepositoryLocate(t *testing.T) {
	t.Parallel()

	repo := NewRepository("/repo")
	locator, err := repo.Locate("music/ffxiv/bgm_system_title.scd")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if locator.Category != sqpath.CategoryMusic || locator.Expansion != sqpath.ExpansionFFXIV {
		t.Errorf("Locate() = %+v, unexpected", locator)
	}
}
