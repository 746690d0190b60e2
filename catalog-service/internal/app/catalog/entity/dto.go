package entity

import (
	"time"

	"github.com/google/uuid"
)

// MovieListQuery - скалярные query-параметры списка фильмов.
// Идентификаторы справочников парсятся отдельно.
type MovieListQuery struct {
	Status   string `form:"status" binding:"omitempty,subscription"`
	Search   string `form:"search"`
	Ordering string `form:"ordering" binding:"omitempty,oneof=year -year created_at"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// MovieFilter описывает параметры выборки списка фильмов
type MovieFilter struct {
	CountryID  *uuid.UUID
	GenreID    *uuid.UUID
	ActorID    *uuid.UUID
	Status     string
	Search     string // Подстрока имени, без учета регистра
	Ordering   string // year или -year
	Page       int
	PageSize   int
}

// MovieListItem - элемент списка фильмов. Список публичный и не
// раскрывает платный контент, поэтому состав полей минимальный.
type MovieListItem struct {
	ID        uuid.UUID `json:"id"`
	PosterURL string    `json:"movie_image"`
	Name      string    `json:"movie_name"`
	Year      int       `json:"year"`
	Countries []string  `json:"countries"`
	Genres    []string  `json:"genres"`
}

// MovieListResponse - страница списка фильмов
type MovieListResponse struct {
	Movies   []MovieListItem `json:"movies"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// RatingView - оценка в составе детальной карточки фильма
type RatingView struct {
	Username  string    `json:"username"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewView - отзыв в составе детальной карточки. Дерево ответов
// отдается плоским списком: клиент восстанавливает его по parent_id.
type ReviewView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Text      string     `json:"text"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MovieDetail - полная карточка фильма с агрегатами
type MovieDetail struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"movie_name"`
	Year        int          `json:"year"`
	Quality     string       `json:"movie_type"`
	RuntimeMin  int          `json:"movie_time"`
	PosterURL   string       `json:"movie_image"`
	TrailerURL  string       `json:"movie_trailer"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Countries   []Country    `json:"countries"`
	Genres      []Genre      `json:"genres"`
	Directors   []Director   `json:"directors"`
	Actors      []Actor      `json:"actors"`
	Videos      []MovieVideo `json:"videos"`
	Frames      []MovieFrame `json:"frames"`
	Ratings     []RatingView `json:"ratings"`
	Reviews     []ReviewView `json:"reviews"`
	AvgRating   float64      `json:"avg_rating"`   // Среднее с точностью 2 знака, 0 без оценок
	RatingCount int64        `json:"rating_count"`
}

// CreateRatingRequest - запрос на оценку фильма
type CreateRatingRequest struct {
	MovieID uuid.UUID `json:"movie_id" binding:"required"`
	Stars   int       `json:"stars" binding:"required,min=1,max=10"`
}

// CreateReviewRequest - запрос на отзыв
type CreateReviewRequest struct {
	MovieID  uuid.UUID  `json:"movie_id" binding:"required"`
	Text     string     `json:"text" binding:"required,min=1,max=5000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateReviewLikeRequest - запрос на лайк отзыва
type CreateReviewLikeRequest struct {
	ReviewID uuid.UUID `json:"review_id" binding:"required"`
}

// CreateFavoriteItemRequest - запрос на добавление фильма в избранное
type CreateFavoriteItemRequest struct {
	MovieID uuid.UUID `json:"movie_id" binding:"required"`
}

// CreateHistoryRequest - явная запись в журнал просмотров
type CreateHistoryRequest struct {
	MovieID uuid.UUID `json:"movie_id" binding:"required"`
}

// CategoryListResponse - страница списка категорий
type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// GenreListResponse - страница списка жанров
type GenreListResponse struct {
	Genres   []Genre `json:"genres"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
