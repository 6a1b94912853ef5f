// Package resolver turns item ids into playable descriptors, caching the results.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/tracker"
)

// DefaultRetryDelay is the base delay between network retries.
const DefaultRetryDelay = 250 * time.Millisecond

// Fetcher looks up raw stream data for an item.
type Fetcher interface {
	Info(ctx context.Context, id string) (*source.StreamInfo, error)
}

type entry struct {
	item *source.Item
	err  error
}

// Resolver resolves item ids through a Fetcher.
//
// Successful resolutions are cached for the success lifetime so a playing item
// is not looked up again mid-playback. Items without a playable format are
// cached for the shorter default lifetime. Network failures are retried and
// never cached.
type Resolver struct {
	fetcher    Fetcher
	clock      tracker.Clock
	cache      *ttlCache[string, entry]
	preferred  []int
	retries    int
	retryDelay time.Duration
	defaultTTL time.Duration
	successTTL time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the clock used for cache expiry.
func WithClock(clock tracker.Clock) Option {
	return func(r *Resolver) {
		r.clock = clock
	}
}

// WithTTL sets the default and success cache lifetimes.
func WithTTL(defaultTTL, successTTL time.Duration) Option {
	return func(r *Resolver) {
		if defaultTTL > 0 {
			r.defaultTTL = defaultTTL
		}
		if successTTL > 0 {
			r.successTTL = successTTL
		}
	}
}

// WithPreferredFormats sets the stream format tags tried in order before HLS.
func WithPreferredFormats(itags ...int) Option {
	return func(r *Resolver) {
		if len(itags) > 0 {
			r.preferred = itags
		}
	}
}

// WithRetries sets how many times a failed fetch is retried and the base delay between attempts.
func WithRetries(retries int, delay time.Duration) Option {
	return func(r *Resolver) {
		r.retries = max(0, retries)
		r.retryDelay = delay
	}
}

// New returns a Resolver backed by fetcher.
func New(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:    fetcher,
		clock:      tracker.SystemClock{},
		preferred:  []int{22, 18},
		retries:    2,
		retryDelay: DefaultRetryDelay,
		defaultTTL: 60 * time.Second,
		successTTL: 600 * time.Second,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.cache = newTTLCache[string, entry](r.clock)
	return r
}

// Resolve returns the playable descriptor for id.
// Errors are always *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, id string) (*source.Item, error) {
	if id == "" {
		return nil, &ResolutionError{ID: id, Err: ErrEmptyID}
	}

	if cached, ok := r.cache.Get(id).Get(); ok {
		log.WithFields(log.Fields{"item": id, "failed": cached.err != nil}).Debug("resolver cache hit")
		return cached.item, cached.err
	}

	// Expired entries are swept on every miss.
	log.WithFields(log.Fields{"item": id, "cached": r.cache.Prune()}).Debug("resolver cache miss")

	info, err := r.fetch(ctx, id)
	if err != nil {
		return nil, &ResolutionError{ID: id, Err: err}
	}

	item, err := r.build(id, info)
	if err != nil {
		rerr := &ResolutionError{ID: id, Err: err}
		r.cache.Set(id, entry{err: rerr}, r.defaultTTL)
		return nil, rerr
	}

	r.cache.Set(id, entry{item: item}, r.successTTL)
	return item, nil
}

// Invalidate drops any cached result for id.
func (r *Resolver) Invalidate(id string) {
	r.cache.Delete(id)
}

// Purge drops every cached result.
func (r *Resolver) Purge() {
	r.cache.Purge()
}

func (r *Resolver) fetch(ctx context.Context, id string) (*source.StreamInfo, error) {
	var lastErr error

	for attempt := 0; attempt <= r.retries; attempt++ {
		if attempt > 0 {
			log.WithFields(log.Fields{"item": id, "attempt": attempt}).Warnf("retrying resolution: %v", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * r.retryDelay):
			}
		}

		info, err := r.fetcher.Info(ctx, id)
		if err == nil {
			if info == nil {
				return nil, ErrNoPlayableFormat
			}
			return info, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		lastErr = err
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", r.retries+1, lastErr)
}

func (r *Resolver) build(id string, info *source.StreamInfo) (*source.Item, error) {
	item := &source.Item{
		ID:        info.ID,
		Title:     info.Title,
		Author:    info.Author,
		Thumbnail: info.Thumbnail(),
	}

	if item.ID == "" {
		item.ID = id
	}

	if item.Title == "" {
		item.Title = item.ID
	}

	if item.Author == "" {
		item.Author = source.UnknownAuthor
	}

	for _, itag := range r.preferred {
		if format, ok := info.FormatByItag(itag); ok {
			item.URI = format.URL
			item.Headers = format.Headers
			item.SetDuration(info.LengthSeconds)
			return item, nil
		}
	}

	if info.HLS != "" {
		item.URI = info.HLS
		item.Live = true
		item.SetDuration(0)
		return item, nil
	}

	return nil, ErrNoPlayableFormat
}
