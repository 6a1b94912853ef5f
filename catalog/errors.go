package catalog

import "fmt"

// MalformedSearchResultError reports a search row that cannot become an item.
type MalformedSearchResultError struct {
	Index  int
	ID     string
	Reason string
}

func (e *MalformedSearchResultError) Error() string {
	return fmt.Sprintf("malformed search result #%d (%q): %s", e.Index, e.ID, e.Reason)
}
