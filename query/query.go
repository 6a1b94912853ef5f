// Package query remembers search terms and suggests them back, most used first.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/key"
	"github.com/screenroom/screenroom/where"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// historyLimit bounds the remembered terms. The lowest ranked are forgotten first.
var historyLimit = 256

var (
	mu    sync.Mutex
	store = gache.New[map[string]*record](&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	})
	// memo holds the suggestions per input until the next Remember.
	memo = make(map[string][]string)
)

func load() map[string]*record {
	records, expired, err := store.Get()
	if err != nil || expired || records == nil {
		return make(map[string]*record)
	}
	return records
}

// Remember adds weight to the rank of q.
func Remember(q string, weight int) error {
	if !viper.GetBool(key.SearchRememberQueries) {
		return nil
	}

	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	records := load()
	if r, ok := records[q]; ok {
		r.Rank += weight
	} else {
		records[q] = &record{Rank: weight, Query: q}
	}

	trim(records)
	clear(memo)
	return store.Set(records)
}

func trim(records map[string]*record) {
	if len(records) <= historyLimit {
		return
	}

	ranked := lo.Values(records)
	slices.SortFunc(ranked, func(a, b *record) int {
		return a.Rank - b.Rank
	})

	for _, r := range ranked[:len(ranked)-historyLimit] {
		delete(records, r.Query)
	}
}

// Suggest returns the best remembered term matching q.
func Suggest(q string) mo.Option[string] {
	return mo.TupleToOption(lo.First(SuggestMany(q)))
}

// SuggestMany returns the remembered terms fuzzily matching q. Higher ranks
// come first, closer matches break ties.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	if suggestions, ok := memo[q]; ok {
		return suggestions
	}

	type match struct {
		*record
		distance int
	}

	var matches []match
	for _, r := range load() {
		if distance := fuzzy.RankMatch(q, r.Query); distance >= 0 {
			matches = append(matches, match{r, distance})
		}
	}

	slices.SortFunc(matches, func(a, b match) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return a.distance - b.distance
	})

	suggestions := lo.Map(matches, func(m match, _ int) string {
		return m.Query
	})
	memo[q] = suggestions
	return suggestions
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
