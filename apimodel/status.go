package apimodel

// Status is the read-only appliance state served by the API.
type Status struct {
	ActiveSlide string         `json:"active_slide"`
	SlideOrder  []string       `json:"slide_order"`
	DisplayOn   bool           `json:"display_on"`
	Sources     []SourceStatus `json:"sources"`
}

// SourceStatus reports the reading cache entry for one data source.
type SourceStatus struct {
	Source      string  `json:"source"`
	Valid       bool    `json:"valid"`
	AgeSeconds  float64 `json:"age_seconds"`
	LastSuccess string  `json:"last_success,omitempty"`
}
