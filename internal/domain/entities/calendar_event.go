package entities

import "time"

// CalendarEvent is a scheduled occurrence of an activity.
type CalendarEvent struct {
	ID         string    `json:"id" db:"id"`
	ActivityID *string   `json:"activity_id" db:"activity_id"`
	Title      string    `json:"title" db:"title"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	Notes      string    `json:"notes" db:"notes"`
	Completed  bool      `json:"completed" db:"completed"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Joined from the linked activity for calendar rendering.
	ActivityTitle string `json:"activity_title,omitempty" db:"-"`
	Category      string `json:"category,omitempty" db:"-"`
	Location      string `json:"location,omitempty" db:"-"`
	Duration      int    `json:"duration,omitempty" db:"-"`
	CategoryColor string `json:"category_color,omitempty" db:"-"`
}
