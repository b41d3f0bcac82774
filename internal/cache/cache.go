// Package cache keeps catalog listings on disk so browsing does not refetch
// pages that rarely change.
//
// Each cached link lives in its own file, so entries expire independently.
// The lifetime is read from configuration on every access; zero disables caching.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/where"
)

// Lifetime returns the configured time an entry stays fresh.
func Lifetime() time.Duration {
	return time.Duration(viper.GetInt(key.CacheLifetime)) * time.Hour
}

// GenerateKey derives a deterministic file name from a link and a listing kind.
func GenerateKey(link, kind string) string {
	sanitized := strings.ToLower(strings.TrimSpace(link)) + "|" + kind
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

type entry[T any] struct {
	Link  string `json:"link"`
	Value T      `json:"value"`
}

// Listing caches values of one kind, keyed by the link they were fetched from.
type Listing[T any] struct {
	kind string
}

func NewListing[T any](kind string) *Listing[T] {
	return &Listing[T]{kind: kind}
}

func (l *Listing[T]) store(link string) *gache.Cache[*entry[T]] {
	return gache.New[*entry[T]](&gache.Options{
		Path:       filepath.Join(where.Listings(), GenerateKey(link, l.kind)+".json"),
		Lifetime:   Lifetime(),
		FileSystem: &filesystem.GacheFs{},
	})
}

// Get returns the cached value for link, if present and fresh.
func (l *Listing[T]) Get(link string) (value T, ok bool) {
	if Lifetime() <= 0 {
		return value, false
	}

	cached, expired, err := l.store(link).Get()
	if err != nil || expired || cached == nil || cached.Link != link {
		return value, false
	}
	return cached.Value, true
}

// Set stores value for link. It is a no-op while caching is disabled.
func (l *Listing[T]) Set(link string, value T) error {
	if Lifetime() <= 0 {
		return nil
	}
	return l.store(link).Set(&entry[T]{Link: link, Value: value})
}

// GetOrFetch returns the cached value or calls fetch and caches its result.
// A failure to write the cache is logged, never returned.
func (l *Listing[T]) GetOrFetch(link string, fetch func() (T, error)) (T, error) {
	if value, ok := l.Get(link); ok {
		log.Debugf("cache hit for %s %s", l.kind, link)
		return value, nil
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if err := l.Set(link, value); err != nil {
		log.Warnf("could not cache %s %s: %s", l.kind, link, err)
	}
	return value, nil
}

// Prune removes entries older than the configured lifetime and reports how many were removed.
func Prune() (removed int) {
	lifetime := Lifetime()
	_ = filesystem.API().Walk(where.Listings(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if lifetime <= 0 || time.Since(info.ModTime()) > lifetime {
			if filesystem.API().Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	return removed
}

// CollectGarbage prunes expired entries in the background.
func CollectGarbage() {
	go func() {
		if n := Prune(); n > 0 {
			log.Infof("pruned %d cached listings", n)
		}
	}()
}

// Clear removes every cached listing.
func Clear() error {
	return filesystem.API().RemoveAll(where.Listings())
}

// Size returns the number of bytes the cached listings take up.
func Size() (size int64) {
	_ = afero.Walk(filesystem.API(), where.Listings(), func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
