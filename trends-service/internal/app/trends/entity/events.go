package entity

import "time"

// Типы событий активности из топика engagement_events
const (
	EventRatingCreated = "RATING_CREATED"
	EventReviewCreated = "REVIEW_CREATED"
	EventMovieViewed   = "MOVIE_VIEWED"
)

// EngagementEvent - событие активности зрителя из catalog-service
type EngagementEvent struct {
	EventType string    `json:"event_type"`
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Stars     int       `json:"stars,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TrendingMovie - позиция фильма в рейтинге трендов
type TrendingMovie struct {
	MovieID string  `json:"movie_id"`
	Score   float64 `json:"score"`
}

// TrendingResponse - ответ эндпоинта /trending
type TrendingResponse struct {
	Movies []TrendingMovie `json:"movies"`
	Limit  int             `json:"limit"`
}
