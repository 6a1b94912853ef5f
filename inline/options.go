package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/util"
)

// Picker narrows the items of a page.
type Picker func([]*source.Item) []*source.Item

type Options struct {
	Out    io.Writer
	Source source.Source
	Query  string
	Params catalog.Params
	Picker mo.Option[Picker]
	// Resolve looks up the stream of every picked item.
	Resolve bool
	Json    bool
}

// ParsePicker parses an item selector:
//
//	first, last, all
//	[index]        zero based
//	[from]-[to]    inclusive range
//	@[substring]@  title contains substring, ignoring case
func ParsePicker(description string) (Picker, error) {
	switch description {
	case "first":
		return func(items []*source.Item) []*source.Item {
			return lo.Subset(items, 0, 1)
		}, nil
	case "last":
		return func(items []*source.Item) []*source.Item {
			return lo.Subset(items, -1, 1)
		}, nil
	case "all":
		return func(items []*source.Item) []*source.Item {
			return items
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(items []*source.Item) []*source.Item {
			return lo.Filter(items, func(item *source.Item, _ int) bool {
				return strings.Contains(strings.ToLower(item.Title), sub)
			})
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid range: %s", description)
		}

		return func(items []*source.Item) []*source.Item {
			n := uint64(len(items))
			s := util.Min(start, n)
			e := util.Min(end+1, n)
			if s >= e {
				return []*source.Item{}
			}
			return items[s:e]
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(items []*source.Item) []*source.Item {
			if uint64(len(items)) <= idx {
				return []*source.Item{}
			}
			return []*source.Item{items[idx]}
		}, nil
	}

	return nil, fmt.Errorf("invalid item selector: %s", description)
}
