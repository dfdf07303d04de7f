package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediashelf-backend/internal/domains/enrichment/walker"
	"mediashelf-backend/internal/shared/response"
)

// ShelfLister supplies the default entry list for a walk: the caller's whole
// shelf in insertion order.
type ShelfLister interface {
	WalkEntries(ctx context.Context, userID uuid.UUID) ([]walker.Entry, error)
}

// WalkHandler drives the enrichment walker over HTTP. Walks live in process
// memory only; a restart simply forgets them.
type WalkHandler struct {
	walks *walker.Registry
	shelf ShelfLister
}

func NewWalkHandler(walks *walker.Registry, shelf ShelfLister) *WalkHandler {
	return &WalkHandler{walks: walks, shelf: shelf}
}

func (h *WalkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/enrichment/walks", h.StartWalk)
	rg.GET("/enrichment/walks/:id", h.GetWalk)
	rg.POST("/enrichment/walks/:id/resume", h.ResumeWalk)
	rg.DELETE("/enrichment/walks/:id", h.CancelWalk)
}

type startWalkRequest struct {
	// Optional explicit list; when empty the walk covers the caller's shelf.
	Entries []walker.Entry `json:"entries"`
}

// StartWalk - POST /v1/enrichment/walks
func (h *WalkHandler) StartWalk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req startWalkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	entries := req.Entries
	for _, e := range entries {
		if !e.Kind.IsValid() || e.EntityID == uuid.Nil {
			response.BadRequest(c, "invalid walk entry")
			return
		}
	}

	if len(entries) == 0 {
		var err error
		entries, err = h.shelf.WalkEntries(c.Request.Context(), userID)
		if err != nil {
			response.InternalServerError(c, "failed to load shelf")
			return
		}
	}
	if len(entries) == 0 {
		response.BadRequest(c, "nothing to enrich")
		return
	}

	w := h.walks.Start(userID, entries)
	response.Success(c, http.StatusAccepted, w.Snapshot())
}

// GetWalk - GET /v1/enrichment/walks/:id
func (h *WalkHandler) GetWalk(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, w.Snapshot())
}

// ResumeWalk - POST /v1/enrichment/walks/:id/resume
func (h *WalkHandler) ResumeWalk(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	if !w.Resume() {
		response.Conflict(c, "walk is not paused")
		return
	}
	response.Success(c, http.StatusOK, w.Snapshot())
}

// CancelWalk - DELETE /v1/enrichment/walks/:id
func (h *WalkHandler) CancelWalk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid walk id")
		return
	}
	if !h.walks.Remove(userID, id) {
		response.NotFound(c, "walk not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *WalkHandler) lookup(c *gin.Context) (*walker.Walker, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid walk id")
		return nil, false
	}
	w, found := h.walks.Get(userID, id)
	if !found {
		response.NotFound(c, "walk not found")
		return nil, false
	}
	return w, true
}

// currentUserID reads the uuid the auth middleware stored. A miss means the
// route was wired without AuthMiddleware, which is a server bug.
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
