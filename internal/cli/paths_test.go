package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blockflow/blockflow/pkg/cache"
)

func TestCacheDirDefault(t *testing.T) {
	// Empty XDG_CACHE_HOME falls back to ~/.cache.
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(root, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	store, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want cache.NullCache", store)
	}
}

func TestNewCacheDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	store, err := newCache(false)
	if err != nil {
		t.Fatalf("newCache(false) error: %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", store)
	}
}
