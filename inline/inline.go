// Package inline runs a search without the terminal interface and prints
// the picked items, optionally resolved to their streams.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/resolver"
	"github.com/screenroom/screenroom/room"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	pager := catalog.NewPager(options.Source, nil, room.PagerOptions()...)

	page, err := pager.Search(ctx, options.Query, options.Params)
	if err != nil {
		return err
	}

	items := page.Items
	if picker, ok := options.Picker.Get(); ok {
		items = picker(items)
	}

	entries := make([]*Entry, len(items))
	for i, item := range items {
		entries[i] = &Entry{Source: options.Source.Name(), Item: item}
	}

	if options.Resolve {
		resolveAll(ctx, resolver.New(options.Source, room.ResolverOptions()...), entries)
	}

	if options.Json {
		data, err := asJson(options.Query, page, entries)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	return writePlain(options.Out, entries)
}

// resolveAll replaces every entry's item with its resolved form. Failures
// are kept on the entry.
func resolveAll(ctx context.Context, res *resolver.Resolver, entries []*Entry) {
	for _, entry := range entries {
		resolved, err := res.Resolve(ctx, entry.Item.ID)
		if err != nil {
			log.WithFields(log.Fields{"item": entry.Item.ID}).Warn(err)
			entry.Error = err.Error()
			continue
		}
		entry.Item = resolved
	}
}

func writePlain(out io.Writer, entries []*Entry) error {
	for _, entry := range entries {
		var err error
		switch {
		case entry.Item.Resolved():
			_, err = fmt.Fprintln(out, entry.Item.URI)
		case entry.Error != "":
			_, err = fmt.Fprintf(out, "%s\t%s\n", entry.Item.ID, entry.Error)
		default:
			_, err = fmt.Fprintf(out, "%s\t%s\t%s\n", entry.Item.ID, entry.Item.Duration, entry.Item.Title)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
