// Package model resolves and prepares the on-disk cache directory for
// the semantic search model backend (spec §4.6's "model cache"). The
// bundled HashingEmbedder needs no files here, but the resolution order
// and the setup marker exist at full fidelity so a real model backend
// can be dropped in behind the same EmbeddingModel interface without
// any caller needing to change.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnvCacheDir overrides the resolved cache directory when set.
const EnvCacheDir = "CODEGRAPH_MODEL_CACHE"

const dirSuffix = "codegraph/models"

// MarkerVersion is written to the setup marker file; a future format
// change bumps this so Setup can detect and refresh a stale cache.
const MarkerVersion = "1"

// CacheDir resolves the model cache directory: explicit env override,
// then the platform cache dir with the codegraph suffix, then the home
// directory as a last resort. It does not create the directory — call
// Setup for that.
func CacheDir() (string, error) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir, nil
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, dirSuffix), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve model cache dir: %w", err)
	}
	return filepath.Join(home, ".cache", dirSuffix), nil
}

// Setup materializes the cache directory and writes a version marker
// file, the explicit operation spec §4.6 requires before any model can
// be used — query paths never create or download anything implicitly.
func Setup() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create model cache dir: %w", err)
	}
	marker := filepath.Join(dir, "VERSION")
	content := fmt.Sprintf("%s\n%s\n", MarkerVersion, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(marker, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write model cache marker: %w", err)
	}
	return dir, nil
}

// IsSetUp reports whether Setup has already run against the resolved
// cache directory.
func IsSetUp() (bool, error) {
	dir, err := CacheDir()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(dir, "VERSION"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
