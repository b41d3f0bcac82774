// Package query remembers search phrases and suggests them back, most used first.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// suggestions memoizes SuggestMany per input until the next Remember.
var suggestions = struct {
	sync.Mutex
	byInput map[string][]string
}{byInput: make(map[string][]string)}

func records() map[string]*queryRecord {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*queryRecord)
	}
	return cached
}

// Remember records a search phrase or raises its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := records()
	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	suggestions.Lock()
	suggestions.byInput = make(map[string][]string)
	suggestions.Unlock()

	return cacher.Set(cached)
}

// Suggest returns the best remembered phrase for a partial input.
func Suggest(q string) mo.Option[string] {
	many := SuggestMany(q)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns remembered phrases fuzzily matching the input, highest rank first.
// An empty input matches everything.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	suggestions.Lock()
	defer suggestions.Unlock()

	if prev, ok := suggestions.byInput[q]; ok {
		return prev
	}

	matched := lo.Filter(lo.Values(records()), func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(matched, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	result := lo.Map(matched, func(r *queryRecord, _ int) string {
		return r.Query
	})
	suggestions.byInput[q] = result
	return result
}

// Clear forgets every remembered phrase.
func Clear() error {
	suggestions.Lock()
	suggestions.byInput = make(map[string][]string)
	suggestions.Unlock()

	return cacher.Set(make(map[string]*queryRecord))
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
