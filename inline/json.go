package inline

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/source"
)

// Entry is one picked item.
type Entry struct {
	// Source is the name of the content source.
	Source string       `json:"source"`
	Item   *source.Item `json:"item"`
	// Error explains why the item could not be resolved.
	Error string `json:"error,omitempty"`
}

// PageInfo locates the page the entries were picked from.
type PageInfo struct {
	Start         int `json:"start"`
	PageSize      int `json:"page_size"`
	TotalCount    int `json:"total_count"`
	NumberOfPages int `json:"number_of_pages"`
}

type Output struct {
	Query  string   `json:"query"`
	Page   PageInfo `json:"page"`
	Result []*Entry `json:"result"`
}

func pageInfo(page *catalog.Page) PageInfo {
	if page == nil {
		return PageInfo{}
	}

	return PageInfo{
		Start:         page.Start,
		PageSize:      page.PageSize,
		TotalCount:    page.TotalCount,
		NumberOfPages: page.NumberOfPages,
	}
}

func asJson(query string, page *catalog.Page, entries []*Entry) ([]byte, error) {
	if entries == nil {
		entries = []*Entry{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Page:   pageInfo(page),
		Result: entries,
	})
}

// Schema returns the JSON schema of the inline output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "item", "entry", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
