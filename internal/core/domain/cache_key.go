package domain

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const cacheKeySeparator = "\x1f"

// CacheKey identifies an ordered list of manifest paths.
type CacheKey string

// NewCacheKey derives the cache key for paths.
//
// Order and length are significant: the same paths in a different order, or an extra
// empty path, produce a different key. Paths are never sorted or deduplicated.
// Every path is stored with its byte length, so no path content can imitate a boundary.
func NewCacheKey(paths []string) CacheKey {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(paths)))
	for _, p := range paths {
		b.WriteString(cacheKeySeparator)
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return CacheKey(b.String())
}

// Paths returns the path list the key was derived from.
func (k CacheKey) Paths() []string {
	count, rest, _ := strings.Cut(string(k), cacheKeySeparator)
	n, err := strconv.Atoi(count)
	if err != nil || n <= 0 {
		return nil
	}

	paths := make([]string, 0, n)
	for i := range n {
		if i > 0 {
			var ok bool
			if rest, ok = strings.CutPrefix(rest, cacheKeySeparator); !ok {
				return paths
			}
		}
		size, tail, ok := strings.Cut(rest, ":")
		if !ok {
			return paths
		}
		length, err := strconv.Atoi(size)
		if err != nil || length < 0 || length > len(tail) {
			return paths
		}
		paths = append(paths, tail[:length])
		rest = tail[length:]
	}
	return paths
}

// Digest returns a short stable fingerprint of the key for logs and span attributes.
func (k CacheKey) Digest() string {
	return strconv.FormatUint(xxhash.Sum64String(string(k)), 16)
}

// String returns the paths joined with " | " for display.
func (k CacheKey) String() string {
	return strings.Join(k.Paths(), " | ")
}
