package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"mediashelf-backend/internal/domains/shelf/model"
	"mediashelf-backend/internal/domains/shelf/service"
	"mediashelf-backend/internal/shared/response"
)

type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shelf", h.ListEntries)
	rg.POST("/shelf", h.AddEntry)
	rg.PATCH("/shelf/:id", h.UpdateEntry)
	rg.DELETE("/shelf/:id", h.RemoveEntry)
}

// ListEntries - GET /v1/shelf
func (h *Handler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to load shelf")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// AddEntry - POST /v1/shelf
func (h *Handler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	entry, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		writeShelfError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// UpdateEntry - PATCH /v1/shelf/:id
func (h *Handler) UpdateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	var req model.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	entry, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		writeShelfError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// RemoveEntry - DELETE /v1/shelf/:id
func (h *Handler) RemoveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, id); err != nil {
		writeShelfError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func writeShelfError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", verrs)
		return
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "shelf entry not found")
	case errors.Is(err, model.ErrDuplicate):
		response.Conflict(c, "already on your shelf")
	default:
		response.InternalServerError(c, "shelf operation failed")
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}
