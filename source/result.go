package source

// TypeVideo is the only result type that can be played.
const TypeVideo = "video"

// SearchResult is a raw row returned by a source's search, before validation.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail string `json:"thumbnail"`
	// Length is the duration as text, e.g. "4:13" or "1:02:03".
	Length string `json:"length"`
	Type   string `json:"type"`
	Live   bool   `json:"live"`
}

// Playable reports whether the row is of a playable type.
func (r *SearchResult) Playable() bool {
	return r.Type == TypeVideo
}
