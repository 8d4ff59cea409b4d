package entities

import "time"

// ActivityHistory is a snapshot of a completed activity. It copies the
// activity fields at completion time so later edits or deletions of the
// activity do not rewrite history.
type ActivityHistory struct {
	ID                 string    `json:"id" db:"id"`
	OriginalActivityID *string   `json:"original_activity_id" db:"original_activity_id"`
	Title              string    `json:"title" db:"title"`
	Description        string    `json:"description" db:"description"`
	Category           string    `json:"category" db:"category"`
	Location           string    `json:"location" db:"location"`
	Duration           int       `json:"duration" db:"duration"`
	URL                string    `json:"url" db:"url"`
	ImageURL           string    `json:"image_url" db:"image_url"`
	EstimatedCost      float64   `json:"estimated_cost" db:"estimated_cost"`
	Excitement         int       `json:"excitement" db:"excitement"`
	CompletedDate      time.Time `json:"completed_date" db:"completed_date"`
	EventStartDate     time.Time `json:"event_start_date" db:"event_start_date"`
	EventEndDate       time.Time `json:"event_end_date" db:"event_end_date"`
	EventNotes         string    `json:"event_notes" db:"event_notes"`
	CategoryColor      string    `json:"category_color,omitempty" db:"-"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}
