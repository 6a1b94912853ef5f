package source

import (
	"fmt"

	"github.com/screenroom/screenroom/util"
)

// LiveDurationSeconds is the nominal duration given to live items ("23:59:59").
// It keeps the auto-advance arithmetic finite without ever firing in practice.
const LiveDurationSeconds = 24*60*60 - 1

// LiveDuration is the formatted duration of a live item.
const LiveDuration = "LIVE"

// UnknownAuthor is used when a source omits the author.
const UnknownAuthor = "unlisted"

// Item describes a playable entry. Items are immutable once resolved.
type Item struct {
	ID              string            `json:"id" jsonschema:"description=Identifier of the item at its source"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	Duration        string            `json:"duration" jsonschema:"description=HH:MM:SS or LIVE"`
	DurationSeconds float64           `json:"duration_seconds"`
	URI             string            `json:"uri,omitempty" jsonschema:"description=Stream URI; empty until resolved"`
	Thumbnail       string            `json:"thumbnail,omitempty"`
	Live            bool              `json:"live"`
	Headers         map[string]string `json:"headers,omitempty"`
}

func (i *Item) String() string {
	if i.Author == "" {
		return i.Title
	}
	return fmt.Sprintf("%s - %s", i.Title, i.Author)
}

// Resolved reports whether the item carries a stream URI.
func (i *Item) Resolved() bool {
	return i.URI != ""
}

// WithTitlePrefix returns a copy with prefix prepended to the title.
func (i *Item) WithTitlePrefix(prefix string) *Item {
	c := *i
	c.Title = prefix + i.Title
	return &c
}

// SetDuration fills both duration fields from a second count.
func (i *Item) SetDuration(seconds int) {
	if i.Live {
		i.Duration = LiveDuration
		i.DurationSeconds = LiveDurationSeconds
		return
	}

	i.Duration = util.SecondsToString(seconds)
	i.DurationSeconds = float64(seconds)
}
