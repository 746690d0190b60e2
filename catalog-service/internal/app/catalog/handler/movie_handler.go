package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kinopark/catalog-service/internal/app/catalog/entity"
	"kinopark/catalog-service/internal/app/catalog/service"
)

type MovieHandler struct {
	catalogService service.CatalogServiceInterface
}

func NewMovieHandler(catalogService service.CatalogServiceInterface) *MovieHandler {
	return &MovieHandler{
		catalogService: catalogService,
	}
}

// List возвращает страницу списка фильмов. Эндпоинт публичный:
// платные фильмы видны в списке, закрыта только детальная карточка.
func (h *MovieHandler) List(c *gin.Context) {
	filter, err := parseMovieFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	resp, err := h.catalogService.ListMovies(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list movies",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get возвращает детальную карточку фильма.
// Для pro-фильма анонимный или simple зритель получает 403.
func (h *MovieHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid movie id",
		})
		return
	}

	viewer := optionalViewerFromContext(c)

	detail, err := h.catalogService.GetMovieDetail(c.Request.Context(), id, viewer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Movie not found",
			})
		case errors.Is(err, service.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Pro subscription required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to get movie",
			})
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

func parseMovieFilter(c *gin.Context) (entity.MovieFilter, error) {
	var query entity.MovieListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return entity.MovieFilter{}, errors.New("invalid query parameters")
	}

	filter := entity.MovieFilter{
		Status:   query.Status,
		Search:   query.Search,
		Ordering: query.Ordering,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	var err error
	if filter.CountryID, err = parseUUIDQuery(c, "country_id"); err != nil {
		return filter, err
	}
	if filter.GenreID, err = parseUUIDQuery(c, "genre_id"); err != nil {
		return filter, err
	}
	if filter.ActorID, err = parseUUIDQuery(c, "actor_id"); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	return &id, nil
}

// parsePagination читает page и page_size, мусор трактует как дефолт
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return page, pageSize
}
