package entity

// SearchDetail carries the identifying fields of one search hit.
type SearchDetail struct {
	Registration string `json:"reg"`
	Callsign     string `json:"callsign"`
	Flight       string `json:"flight"`
	Logo         string `json:"logo"`
}

// SearchEntry is a single result returned by an identifier search.
type SearchEntry struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Type   string       `json:"type"`
	Detail SearchDetail `json:"detail"`
}

// SearchResult groups search hits by kind. Only live entries participate in
// the enrichment pipeline; the rest are kept for completeness.
type SearchResult struct {
	Live     []SearchEntry `json:"live"`
	Airports []SearchEntry `json:"airports"`
	Schedule []SearchEntry `json:"schedule"`
	Aircraft []SearchEntry `json:"aircraft"`
}

// HasLive reports whether the search produced at least one live entry.
func (r *SearchResult) HasLive() bool {
	return r != nil && len(r.Live) > 0
}
