package custom

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/source"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	switch val.Type() {
	case lua.LTString, lua.LTNumber:
		return val.String()
	default:
		return ""
	}
}

func getInt(table *lua.LTable, key string) int {
	if n, ok := table.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func getBool(table *lua.LTable, key string) bool {
	return lua.LVAsBool(table.RawGetString(key))
}

// getStringList accepts either a comma-separated string or an array of strings.
func getStringList(table *lua.LTable, key string) []string {
	val := table.RawGetString(key)

	switch val.Type() {
	case lua.LTString:
		parts := lo.Map(strings.Split(val.String(), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
		return lo.Compact(parts)
	case lua.LTTable:
		var list []string
		forEachRow(val.(*lua.LTable), func(v lua.LValue) {
			if v.Type() == lua.LTString {
				list = append(list, v.String())
			}
		})
		return list
	default:
		return nil
	}
}

func getStringMap(table *lua.LTable, key string) map[string]string {
	tbl, ok := table.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}

	m := make(map[string]string)
	tbl.ForEach(func(k, v lua.LValue) {
		m[k.String()] = v.String()
	})
	return m
}

// forEachRow visits the array part of table in index order.
func forEachRow(table *lua.LTable, fn func(lua.LValue)) {
	for i := 1; i <= table.Len(); i++ {
		fn(table.RawGetInt(i))
	}
}

// resultsFromTable converts the rows returned by a search function. Rows that
// are not tables are dropped; the remaining rows are validated by the catalog.
func resultsFromTable(table *lua.LTable) []*source.SearchResult {
	var results []*source.SearchResult

	forEachRow(table, func(v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			return
		}

		kind := getString(row, "type")
		if kind == "" {
			kind = source.TypeVideo
		}

		results = append(results, &source.SearchResult{
			ID:        getString(row, "id"),
			Title:     getString(row, "title"),
			Author:    getString(row, "author"),
			Thumbnail: getString(row, "thumbnail"),
			Length:    getString(row, "length"),
			Type:      kind,
			Live:      getBool(row, "live"),
		})
	})

	return results
}

func infoFromTable(table *lua.LTable, id string) (*source.StreamInfo, error) {
	info := &source.StreamInfo{
		ID:            getString(table, "id"),
		Title:         getString(table, "title"),
		Author:        getString(table, "author"),
		Thumbnails:    getStringList(table, "thumbnails"),
		LengthSeconds: getInt(table, "length_seconds"),
		HLS:           getString(table, "hls"),
		Live:          getBool(table, "live"),
	}

	if info.ID == "" {
		info.ID = id
	}

	if info.ID != id {
		return nil, fmt.Errorf("asked for %q, script described %q", id, info.ID)
	}

	if formats, ok := table.RawGetString("formats").(*lua.LTable); ok {
		forEachRow(formats, func(v lua.LValue) {
			row, ok := v.(*lua.LTable)
			if !ok {
				return
			}

			info.Formats = append(info.Formats, source.Format{
				Itag:     getInt(row, "itag"),
				URL:      getString(row, "url"),
				MimeType: getString(row, "mime_type"),
				Headers:  getStringMap(row, "headers"),
			})
		})
	}

	return info, nil
}
