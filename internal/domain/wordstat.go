package domain

// TopRequestsPayload is the request body sent to the Wordstat topRequests endpoint
type TopRequestsPayload struct {
	Phrase  string   `json:"phrase"`
	Devices []string `json:"devices"`
}

// TopRequestEntry represents a single related-keyword entry from Wordstat
type TopRequestEntry struct {
	Phrase string `json:"phrase,omitempty"`
	Count  int64  `json:"count"`
}

// TopRequestsResponse represents the Wordstat topRequests response.
// A missing or empty TopRequests list is treated as zero demand, not an error.
type TopRequestsResponse struct {
	TopRequests []TopRequestEntry `json:"topRequests"`
}

// TotalCount sums keyword counts across all returned entries
func (r *TopRequestsResponse) TotalCount() int64 {
	var total int64
	for _, entry := range r.TopRequests {
		total += entry.Count
	}
	return total
}
