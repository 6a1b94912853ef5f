package source

import "github.com/samber/lo"

// Format is one stream rendition offered for an item.
type Format struct {
	Itag     int    `json:"itag"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	// Headers required to fetch the stream.
	Headers map[string]string `json:"headers,omitempty"`
}

// StreamInfo is the raw data a source returns for one item.
type StreamInfo struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Thumbnails    []string `json:"thumbnails"`
	LengthSeconds int      `json:"length_seconds"`
	Formats       []Format `json:"formats"`
	// HLS is the manifest URL of a continuous stream, if any.
	HLS  string `json:"hls"`
	Live bool   `json:"live"`
}

// FormatByItag returns the first format with a URL and the given tag.
func (s *StreamInfo) FormatByItag(itag int) (Format, bool) {
	return lo.Find(s.Formats, func(f Format) bool {
		return f.Itag == itag && f.URL != ""
	})
}

// Thumbnail returns the first thumbnail, or an empty string.
func (s *StreamInfo) Thumbnail() string {
	thumbnail, _ := lo.First(s.Thumbnails)
	return thumbnail
}
