package journal

import "time"

// Entry is a single journal entry with optional mood and stress annotations.
type Entry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Content      string    `json:"content,omitempty"`
	MoodRating   *int      `json:"mood_rating,omitempty"`
	MoodTags     string    `json:"mood_tags,omitempty"`
	StressRating *int      `json:"stress_rating,omitempty"`
	Emotions     string    `json:"emotions,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// SaveRequest is the body for POST /api/journal-entries.
type SaveRequest struct {
	Content      string `json:"content"`
	MoodRating   *int   `json:"mood_rating"`
	MoodTags     string `json:"mood_tags"`
	StressRating *int   `json:"stress_rating"`
	Emotions     string `json:"emotions"`
}

// ListResponse wraps an entry collection.
type ListResponse struct {
	JournalEntries []Entry `json:"journal_entries"`
}
