package catalog

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/source"
)

// Params selects a window of the result list.
type Params struct {
	Start    int `json:"start"`
	PageSize int `json:"page_size"`
}

// Page is one window of search results and the derived next-item mapping.
type Page struct {
	Term          string         `json:"term"`
	Start         int            `json:"start"`
	PageSize      int            `json:"page_size"`
	TotalCount    int            `json:"total_count"`
	NumberOfPages int            `json:"number_of_pages"`
	Items         []*source.Item `json:"items"`

	next map[string]string
	byID map[string]*source.Item
}

func newPage(term string, start, pageSize int, all []*source.Item) *Page {
	total := len(all)
	end := min(start+pageSize, total)

	page := &Page{
		Term:          term,
		Start:         start,
		PageSize:      pageSize,
		TotalCount:    total,
		NumberOfPages: (total + pageSize - 1) / pageSize,
		Items:         all[start:end],
	}

	page.byID = lo.KeyBy(page.Items, func(item *source.Item) string {
		return item.ID
	})
	page.next = nextItemMap(page.Items)

	return page
}

// nextItemMap links every item to its successor and the last back to the first.
// A single item has no successor.
func nextItemMap(items []*source.Item) map[string]string {
	next := make(map[string]string, len(items))
	if len(items) < 2 {
		return next
	}

	for i, item := range items {
		next[item.ID] = items[(i+1)%len(items)].ID
	}

	return next
}

// Empty reports whether the page holds no playable item.
func (p *Page) Empty() bool {
	return len(p.Items) == 0
}

// PageNumber is the 1-based index of the page.
func (p *Page) PageNumber() int {
	if p.PageSize == 0 {
		return 1
	}
	return p.Start/p.PageSize + 1
}

// NextItem returns the id that follows id.
func (p *Page) NextItem(id string) mo.Option[string] {
	next, ok := p.next[id]
	return mo.TupleToOption(next, ok)
}

// Item returns the item with the given id.
func (p *Page) Item(id string) mo.Option[*source.Item] {
	item, ok := p.byID[id]
	return mo.TupleToOption(item, ok)
}
