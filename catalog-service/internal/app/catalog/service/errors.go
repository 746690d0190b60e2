package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrCountryNotFound  = errors.New("country not found")
	ErrDirectorNotFound = errors.New("director not found")
	ErrActorNotFound    = errors.New("actor not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrNotFound         = errors.New("not found")

	// ErrAccessDenied - просмотр pro-фильма без pro-подписки
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation - некорректные данные в запросе
	ErrValidation = errors.New("validation failed")

	// Повторная запись активности, запрещенная ограничением уникальности
	ErrDuplicateRating       = errors.New("movie already rated by this user")
	ErrDuplicateReview       = errors.New("movie already reviewed by this user")
	ErrDuplicateLike         = errors.New("review already liked by this user")
	ErrDuplicateFavoriteItem = errors.New("movie already in favorites")
)
