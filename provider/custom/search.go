package custom

import (
	"context"

	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/internal/cache"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
	lua "github.com/yuin/gopher-lua"
)

// Search calls the script's search function. Pages are cached on disk; the
// limit is applied after the cache so one entry serves every limit.
func (s *luaSource) Search(ctx context.Context, query string, limit int) ([]*source.SearchResult, error) {
	key := cache.Key(query, s.ID())

	var results []*source.SearchResult
	if cache.Read(key, &results) {
		log.Debugf("%s: cache hit for %q", s.name, query)
		return truncate(results, limit), nil
	}

	val, err := s.call(ctx, constant.SearchItemsFn, lua.LTTable, lua.LString(query))
	if err != nil {
		return nil, err
	}

	results = resultsFromTable(val.(*lua.LTable))

	if len(results) > 0 {
		if err := cache.Write(key, results); err != nil {
			log.Warnf("%s: cache write: %v", s.name, err)
		}
	}

	return truncate(results, limit), nil
}

func truncate(results []*source.SearchResult, limit int) []*source.SearchResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
