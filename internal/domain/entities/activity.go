package entities

import "time"

// Activity is a saved activity idea, either entered manually or accepted
// from a link-parse suggestion.
type Activity struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Category      string    `json:"category" db:"category"`
	Location      string    `json:"location" db:"location"`
	Duration      int       `json:"duration" db:"duration"`
	URL           string    `json:"url" db:"url"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	EstimatedCost float64   `json:"estimated_cost" db:"estimated_cost"`
	Excitement    int       `json:"excitement" db:"excitement"`
	CategoryColor string    `json:"category_color,omitempty" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
