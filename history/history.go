// Package history records what was played and how far.
package history

import (
	"fmt"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/where"
	"golang.org/x/exp/slices"
)

// Record is one played title. Season and Episode are 0 for movies.
type Record struct {
	SeriesTitle       string    `json:"series_title,omitempty"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Season            int       `json:"season,omitempty"`
	Episode           int       `json:"episode,omitempty"`
	WatchedPercentage float64   `json:"watched_percentage"`
	WatchedAt         time.Time `json:"watched_at"`
}

func (r *Record) String() string {
	if r.Season > 0 || r.Episode > 0 {
		return fmt.Sprintf("%s S%02dE%02d %s (%.0f%%)", r.SeriesTitle, r.Season, r.Episode, r.Title, r.WatchedPercentage)
	}
	return fmt.Sprintf("%s (%.0f%%)", r.Title, r.WatchedPercentage)
}

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record keyed by URL.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Recent returns the records, most recently watched first.
func Recent() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return b.WatchedAt.Compare(a.WatchedAt)
	})
	return records, nil
}

// Save stores record with the given progress. Re-watching never lowers the stored percentage.
func Save(record *Record, percentage float64) error {
	if record.URL == "" {
		return fmt.Errorf("history record without url")
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[record.URL]; ok && existing.WatchedPercentage > percentage {
		percentage = existing.WatchedPercentage
	}

	stored := *record
	stored.WatchedPercentage = percentage
	stored.WatchedAt = time.Now()
	saved[record.URL] = &stored

	return cacher.Set(saved)
}

// Remove deletes the record for url.
func Remove(url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, url)
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	return cacher.Set(make(map[string]*Record))
}
