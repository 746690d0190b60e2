package entity

import "time"

// Типы событий активности для Kafka
const (
	EventRatingCreated = "RATING_CREATED"
	EventReviewCreated = "REVIEW_CREATED"
	EventMovieViewed   = "MOVIE_VIEWED"
)

// EngagementEvent представляет событие пользовательской активности.
// Ключ сообщения - MovieID, чтобы события одного фильма шли в одну партицию.
type EngagementEvent struct {
	EventType string    `json:"event_type"` // RATING_CREATED, REVIEW_CREATED, MOVIE_VIEWED
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Stars     int       `json:"stars,omitempty"` // Только для RATING_CREATED
	Timestamp time.Time `json:"timestamp"`
}
