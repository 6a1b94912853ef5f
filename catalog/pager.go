// Package catalog pages search results and answers "what plays next".
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/util"
)

const (
	DefaultPageSize   = 18
	DefaultMaxResults = 90
)

// Searcher is the external search collaborator.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]*source.SearchResult, error)
}

// View owns the visual resources of the displayed page.
type View interface {
	// Clear releases everything shown for the previous page.
	Clear()
	// Show displays a page with at least one item.
	Show(page *Page)
	// Empty displays the placeholder for a search without playable results.
	Empty(term string)
}

// Pager holds the results of the last search and the page currently shown.
type Pager struct {
	searcher   Searcher
	view       View
	pageSize   int
	maxResults int

	mu      sync.RWMutex
	term    string
	results []*source.Item
	page    *Page
}

// Option configures a Pager.
type Option func(*Pager)

// WithPageSize sets the default number of items per page.
func WithPageSize(size int) Option {
	return func(p *Pager) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithMaxResults caps how many results a search keeps for paging.
func WithMaxResults(n int) Option {
	return func(p *Pager) {
		if n > 0 {
			p.maxResults = n
		}
	}
}

// NewPager returns a pager. A nil view is replaced by one that draws nothing.
func NewPager(searcher Searcher, view View, opts ...Option) *Pager {
	if view == nil {
		view = NopView{}
	}

	p := &Pager{
		searcher:   searcher,
		view:       view,
		pageSize:   DefaultPageSize,
		maxResults: DefaultMaxResults,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Search runs term against the searcher and shows the requested window.
func (p *Pager) Search(ctx context.Context, term string, params Params) (*Page, error) {
	term = strings.TrimSpace(term)

	rows, err := p.searcher.Search(ctx, term, p.maxResults)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	items := Items(rows)
	if len(items) > p.maxResults {
		items = items[:p.maxResults]
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.term = term
	p.results = items
	return p.buildLocked(params), nil
}

// NextPage shows the following window, wrapping to the first past the end.
func (p *Pager) NextPage() mo.Option[*Page] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page == nil {
		return mo.None[*Page]()
	}

	start := p.page.Start + p.page.PageSize
	if start >= len(p.results) {
		start = 0
	}

	return mo.Some(p.buildLocked(Params{Start: start, PageSize: p.page.PageSize}))
}

// PreviousPage shows the preceding window, stopping at the first.
func (p *Pager) PreviousPage() mo.Option[*Page] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page == nil {
		return mo.None[*Page]()
	}

	start := max(0, p.page.Start-p.page.PageSize)
	return mo.Some(p.buildLocked(Params{Start: start, PageSize: p.page.PageSize}))
}

// Current returns the page being shown.
func (p *Pager) Current() mo.Option[*Page] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mo.TupleToOption(p.page, p.page != nil)
}

// NextItem returns the id that follows id on the current page.
func (p *Pager) NextItem(id string) mo.Option[string] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.page == nil {
		return mo.None[string]()
	}
	return p.page.NextItem(id)
}

// Item returns a descriptor from the current page.
func (p *Pager) Item(id string) mo.Option[*source.Item] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.page == nil {
		return mo.None[*source.Item]()
	}
	return p.page.Item(id)
}

func (p *Pager) buildLocked(params Params) *Page {
	size := params.PageSize
	if size <= 0 {
		size = p.pageSize
	}

	start := util.Clamp(params.Start, 0, max(0, len(p.results)-1))

	p.view.Clear()
	p.page = newPage(p.term, start, size, p.results)

	if p.page.Empty() {
		p.view.Empty(p.term)
	} else {
		p.view.Show(p.page)
	}

	return p.page
}

// Items converts raw search rows into items, dropping rows that are not
// playable and skipping malformed ones.
func Items(rows []*source.SearchResult) []*source.Item {
	items := make([]*source.Item, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		if row == nil || !row.Playable() {
			continue
		}

		item, err := toItem(i, row)
		if err != nil {
			log.WithFields(log.Fields{"index": i}).Warn(err)
			continue
		}

		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		items = append(items, item)
	}

	return items
}

func toItem(index int, row *source.SearchResult) (*source.Item, error) {
	malformed := func(reason string) error {
		return &MalformedSearchResultError{Index: index, ID: row.ID, Reason: reason}
	}

	if strings.TrimSpace(row.ID) == "" {
		return nil, malformed("missing id")
	}

	if strings.TrimSpace(row.Title) == "" {
		return nil, malformed("missing title")
	}

	item := &source.Item{
		ID:        row.ID,
		Title:     row.Title,
		Author:    lo.Ternary(row.Author == "", source.UnknownAuthor, row.Author),
		Thumbnail: row.Thumbnail,
		Live:      row.Live,
	}

	if row.Live {
		item.SetDuration(0)
		return item, nil
	}

	seconds, err := util.HMSToSeconds(row.Length)
	if err != nil {
		return nil, malformed(err.Error())
	}

	item.SetDuration(seconds)
	return item, nil
}

// NopView draws nothing.
type NopView struct{}

func (NopView) Clear()       {}
func (NopView) Show(*Page)   {}
func (NopView) Empty(string) {}
