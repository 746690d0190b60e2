package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы доступа. Совпадают со статусами подписки пользователя:
// фильм со статусом pro доступен только pro-пользователям.
const (
	StatusPro    = "pro"
	StatusSimple = "simple"
)

// Качества видео для фильма
const (
	Quality360p      = "360p"
	Quality480p      = "480p"
	Quality720p      = "720p"
	Quality1080p     = "1080p"
	Quality1080Ultra = "1080p Ultra"
)

// Category представляет категорию жанров
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"category_name" gorm:"uniqueIndex;not null"`
	Genres    []Genre   `json:"genres,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time `json:"created_at"`
}

// Genre представляет жанр внутри категории
type Genre struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string    `json:"genre_name" gorm:"not null"`
	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;index;not null"`
	Movies     []Movie   `json:"movies,omitempty" gorm:"many2many:movie_genres"`
	CreatedAt  time.Time `json:"created_at"`
}

// Country представляет страну производства
type Country struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"country_name" gorm:"uniqueIndex;not null"`
	Movies    []Movie   `json:"movies,omitempty" gorm:"many2many:movie_countries"`
	CreatedAt time.Time `json:"created_at"`
}

// Director представляет режиссера
type Director struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FullName  string     `json:"full_name" gorm:"not null"`
	PhotoURL  string     `json:"photo_url"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Bio       string     `json:"bio"`
	Movies    []Movie    `json:"movies,omitempty" gorm:"many2many:movie_directors"`
	CreatedAt time.Time  `json:"created_at"`
}

// Actor представляет актера
type Actor struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	FullName  string       `json:"full_name" gorm:"not null"`
	PhotoURL  string       `json:"photo_url"`
	BirthDate *time.Time   `json:"birth_date,omitempty"`
	Bio       string       `json:"bio"`
	Images    []ActorImage `json:"images,omitempty" gorm:"foreignKey:ActorID"`
	Movies    []Movie      `json:"movies,omitempty" gorm:"many2many:movie_actors"`
	CreatedAt time.Time    `json:"created_at"`
}

// ActorImage представляет дополнительное фото актера
type ActorImage struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ActorID  uuid.UUID `json:"actor_id" gorm:"type:uuid;index;not null"`
	ImageURL string    `json:"image_url" gorm:"not null"`
}

// Movie представляет фильм в каталоге
type Movie struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string       `json:"movie_name" gorm:"index;not null"`
	Year        int          `json:"year" gorm:"index"`
	Quality     string       `json:"movie_type"` // 360p..1080p Ultra
	RuntimeMin  int          `json:"movie_time"` // Длительность в минутах
	PosterURL   string       `json:"movie_image"`
	TrailerURL  string       `json:"movie_trailer"`
	Description string       `json:"description"`
	Status      string       `json:"status" gorm:"index;default:simple"` // pro или simple
	Countries   []Country    `json:"countries,omitempty" gorm:"many2many:movie_countries"`
	Genres      []Genre      `json:"genres,omitempty" gorm:"many2many:movie_genres"`
	Directors   []Director   `json:"directors,omitempty" gorm:"many2many:movie_directors"`
	Actors      []Actor      `json:"actors,omitempty" gorm:"many2many:movie_actors"`
	Videos      []MovieVideo `json:"videos,omitempty" gorm:"foreignKey:MovieID"`
	Frames      []MovieFrame `json:"frames,omitempty" gorm:"foreignKey:MovieID"`
	Ratings     []Rating     `json:"ratings,omitempty" gorm:"foreignKey:MovieID"`
	Reviews     []Review     `json:"reviews,omitempty" gorm:"foreignKey:MovieID"`
	CreatedAt   time.Time    `json:"created_at"`
}

// MovieVideo представляет видеофайл фильма
type MovieVideo struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MovieID  uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	VideoURL string    `json:"video" gorm:"not null"`
	Title    string    `json:"title"`
}

// MovieFrame представляет кадр из фильма
type MovieFrame struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MovieID  uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	ImageURL string    `json:"image" gorm:"not null"`
}

// Rating представляет оценку фильма пользователем.
// Пара (user_id, movie_id) уникальна: второй раз оценить фильм нельзя.
// Имя пользователя денормализовано из JWT, чтобы не ходить в auth-service.
type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie"`
	Username  string    `json:"username"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie;index"`
	Stars     int       `json:"stars" gorm:"not null"` // 1..10
	CreatedAt time.Time `json:"created_at"`
}

// Review представляет отзыв на фильм. ParentID ссылается на отзыв,
// на который дан ответ; родитель обязан принадлежать тому же фильму.
type Review struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	Username  string     `json:"username"`
	MovieID   uuid.UUID  `json:"movie_id" gorm:"type:uuid;index;not null"`
	Text      string     `json:"text" gorm:"not null"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"created_at"`
}

// ReviewLike представляет лайк отзыва.
// Пара (user_id, review_id) уникальна.
type ReviewLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review"`
	ReviewID  uuid.UUID `json:"review_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_review;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite представляет список избранного. Один список на пользователя,
// создается при первом обращении.
type Favorite struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Items     []FavoriteItem `json:"items,omitempty" gorm:"foreignKey:FavoriteID"`
	CreatedAt time.Time      `json:"created_at"`
}

// FavoriteItem представляет фильм в списке избранного.
// Пара (favorite_id, movie_id) уникальна: фильм добавляется один раз.
type FavoriteItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FavoriteID uuid.UUID `json:"favorite_id" gorm:"type:uuid;not null;uniqueIndex:idx_fav_items_list_movie"`
	MovieID    uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;uniqueIndex:idx_fav_items_list_movie"`
	Movie      *Movie    `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryEntry представляет запись журнала просмотров в MongoDB.
// Журнал append-only: повторный просмотр - новая запись.
type HistoryEntry struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID   string             `json:"user_id" bson:"user_id"`   // UUID пользователя из Auth Service
	MovieID  string             `json:"movie_id" bson:"movie_id"` // UUID фильма
	ViewedAt time.Time          `json:"viewed_at" bson:"viewed_at"`
}
