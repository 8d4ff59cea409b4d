package entities

// Suggestion is the normalized result of parsing an activity link. It is a
// pure computation result: never persisted, never cached. The caller edits it
// and saves an accepted version as an Activity.
type Suggestion struct {
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	Location            string              `json:"location"`
	URL                 string              `json:"url"`
	ImageURL            *string             `json:"image_url"`
	EstimatedCost       float64             `json:"estimated_cost"`
	Excitement          int                 `json:"excitement"`
	Duration            int                 `json:"duration"`
	Source              string              `json:"source,omitempty"`
	ManualInputRequired bool                `json:"manual_input_required,omitempty"`
	Metadata            *SuggestionMetadata `json:"_metadata,omitempty"`
}

// SuggestionMetadata explains how a suggestion was assembled: which provider
// handled the URL, whether the scrape pass degraded to URL-only extraction,
// and which strategy produced each field.
type SuggestionMetadata struct {
	Provider    string            `json:"provider"`
	ResolvedURL string            `json:"resolved_url"`
	Degraded    bool              `json:"degraded"`
	Signals     map[string]string `json:"signals,omitempty"`
}
