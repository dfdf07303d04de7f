package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
	"mediashelf-backend/internal/domains/enrichment/service"
	"mediashelf-backend/internal/shared/response"
)

// DetailHandler exposes the detail cache per entity kind:
//
//	GET  /{kind}/:id/details          -> {entity, cached}
//	POST /{kind}/:id/details/refresh  -> force refetch
type DetailHandler struct {
	enrichment *service.Service
}

func NewDetailHandler(enrichment *service.Service) *DetailHandler {
	return &DetailHandler{enrichment: enrichment}
}

func (h *DetailHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/books/:id/details", h.GetBookDetails)
	rg.POST("/books/:id/details/refresh", h.RefreshBookDetails)
	rg.GET("/movies/:id/details", h.GetMovieDetails)
	rg.POST("/movies/:id/details/refresh", h.RefreshMovieDetails)
	rg.GET("/tvshows/:id/details", h.GetTVShowDetails)
	rg.POST("/tvshows/:id/details/refresh", h.RefreshTVShowDetails)
	rg.GET("/podcasts/:id/details", h.GetPodcastDetails)
	rg.POST("/podcasts/:id/details/refresh", h.RefreshPodcastDetails)
	rg.GET("/articles/:id/details", h.GetArticleDetails)
	rg.POST("/articles/:id/details/refresh", h.RefreshArticleDetails)
}

func (h *DetailHandler) GetBookDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	book, cached, err := h.enrichment.GetOrFetchBook(c.Request.Context(), id)
	respondDetails(c, book, cached, err)
}

func (h *DetailHandler) RefreshBookDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	book, err := h.enrichment.ForceRefetchBook(c.Request.Context(), id)
	respondDetails(c, book, false, err)
}

func (h *DetailHandler) GetMovieDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	movie, cached, err := h.enrichment.GetOrFetchMovie(c.Request.Context(), id)
	respondDetails(c, movie, cached, err)
}

func (h *DetailHandler) RefreshMovieDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	movie, err := h.enrichment.ForceRefetchMovie(c.Request.Context(), id)
	respondDetails(c, movie, false, err)
}

func (h *DetailHandler) GetTVShowDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	show, cached, err := h.enrichment.GetOrFetchTVShow(c.Request.Context(), id)
	respondDetails(c, show, cached, err)
}

func (h *DetailHandler) RefreshTVShowDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	show, err := h.enrichment.ForceRefetchTVShow(c.Request.Context(), id)
	respondDetails(c, show, false, err)
}

func (h *DetailHandler) GetPodcastDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	podcast, cached, err := h.enrichment.GetOrFetchPodcast(c.Request.Context(), id)
	respondDetails(c, podcast, cached, err)
}

func (h *DetailHandler) RefreshPodcastDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	podcast, err := h.enrichment.ForceRefetchPodcast(c.Request.Context(), id)
	respondDetails(c, podcast, false, err)
}

func (h *DetailHandler) GetArticleDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	article, cached, err := h.enrichment.GetOrFetchArticle(c.Request.Context(), id)
	respondDetails(c, article, cached, err)
}

func (h *DetailHandler) RefreshArticleDetails(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		return
	}
	article, err := h.enrichment.ForceRefetchArticle(c.Request.Context(), id)
	respondDetails(c, article, false, err)
}

func parseEntityID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entity id")
		return uuid.Nil, false
	}
	return id, true
}

// respondDetails translates the enrichment error taxonomy to HTTP. The
// rate-limit signal becomes a 429 whose message is safe to show the user.
func respondDetails(c *gin.Context, entity interface{}, cached bool, err error) {
	if err != nil {
		if rle, ok := emodel.AsRateLimit(err); ok {
			response.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", rle.Message)
			return
		}
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(c, "entity not found")
			return
		}
		response.InternalServerError(c, "failed to load details")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"entity": entity,
		"cached": cached,
	})
}
