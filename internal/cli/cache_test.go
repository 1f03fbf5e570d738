package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// seedCache points the XDG cache root at a temp dir and drops fake
// artifacts into shard subdirectories, mirroring the file cache layout.
func seedCache(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	for _, name := range []string{"ab/abc123.json", "ab/abc456.json", "cd/cdef99.json"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir shard: %v", err)
		}
		if err := os.WriteFile(path, []byte(`{"artifact":"stale"}`), 0o644); err != nil {
			t.Fatalf("seed artifact: %v", err)
		}
	}
	return dir
}

func TestCacheClearRemovesArtifacts(t *testing.T) {
	dir := seedCache(t)

	if err := execRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	var left []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			left = append(left, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk cache dir: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("cache clear left %d artifacts behind: %v", len(left), left)
	}
}

func TestCacheClearRemovesEmptyShards(t *testing.T) {
	dir := seedCache(t)

	if err := execRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache clear left %d shard dirs behind", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "never-created"))

	// A cache that was never written is not an error.
	if err := execRoot(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear on missing dir failed: %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if err := execRoot(t, "cache", "path"); err != nil {
		t.Fatalf("cache path failed: %v", err)
	}
}
