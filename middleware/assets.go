package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"sync"
)

// Static files that get a cache-busting version query
const (
	AssetStyle    = "static/css/style.css"
	AssetFavicon  = "static/images/favicon.svg"
	AssetLeadForm = "static/js/lead-form.js"
)

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		versions := make(map[string]string)
		for _, path := range []string{AssetStyle, AssetFavicon, AssetLeadForm} {
			version := computeFileHash(path)
			if version == "" {
				version = "1"
			}
			versions[path] = version
			log.Printf("[INFO] Asset version initialized: %s=%s", path, version)
		}
		assetVersions = versions
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash for a static file, "1" when unknown.
// ctx is unused; versions are computed once at startup.
func GetAssetVersion(ctx context.Context, path string) string {
	if version, ok := assetVersions[path]; ok {
		return version
	}
	return "1"
}

// AssetURL returns "/"+path with its version query appended
func AssetURL(ctx context.Context, path string) string {
	return "/" + path + "?v=" + GetAssetVersion(ctx, path)
}
