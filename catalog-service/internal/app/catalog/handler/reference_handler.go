package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kinopark/catalog-service/internal/app/catalog/service"
)

// ReferenceHandler отдает справочники: категории, жанры,
// страны, режиссеров и актеров
type ReferenceHandler struct {
	catalogService service.CatalogServiceInterface
}

func NewReferenceHandler(catalogService service.CatalogServiceInterface) *ReferenceHandler {
	return &ReferenceHandler{
		catalogService: catalogService,
	}
}

func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	page, pageSize := parsePagination(c)

	resp, err := h.catalogService.ListCategories(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list categories",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReferenceHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondReferenceError(c, err, "Category")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *ReferenceHandler) ListGenres(c *gin.Context) {
	categoryID, err := parseUUIDQuery(c, "category_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}
	page, pageSize := parsePagination(c)

	resp, err := h.catalogService.ListGenres(c.Request.Context(), categoryID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list genres",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReferenceHandler) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	genre, err := h.catalogService.GetGenre(c.Request.Context(), id)
	if err != nil {
		respondReferenceError(c, err, "Genre")
		return
	}

	c.JSON(http.StatusOK, genre)
}

func (h *ReferenceHandler) ListCountries(c *gin.Context) {
	countries, err := h.catalogService.ListCountries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list countries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

func (h *ReferenceHandler) GetCountry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	country, err := h.catalogService.GetCountry(c.Request.Context(), id)
	if err != nil {
		respondReferenceError(c, err, "Country")
		return
	}

	c.JSON(http.StatusOK, country)
}

func (h *ReferenceHandler) ListDirectors(c *gin.Context) {
	directors, err := h.catalogService.ListDirectors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list directors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"directors": directors})
}

func (h *ReferenceHandler) GetDirector(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	director, err := h.catalogService.GetDirector(c.Request.Context(), id)
	if err != nil {
		respondReferenceError(c, err, "Director")
		return
	}

	c.JSON(http.StatusOK, director)
}

func (h *ReferenceHandler) ListActors(c *gin.Context) {
	actors, err := h.catalogService.ListActors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list actors",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"actors": actors})
}

func (h *ReferenceHandler) GetActor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor, err := h.catalogService.GetActor(c.Request.Context(), id)
	if err != nil {
		respondReferenceError(c, err, "Actor")
		return
	}

	c.JSON(http.StatusOK, actor)
}

// parseIDParam парсит uuid из path-параметра, при ошибке сам пишет 400
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid id",
		})
		return uuid.Nil, false
	}
	return id, true
}

func respondReferenceError(c *gin.Context, err error, kind string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrCountryNotFound),
		errors.Is(err, service.ErrDirectorNotFound),
		errors.Is(err, service.ErrActorNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": kind + " not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get " + kind,
		})
	}
}
