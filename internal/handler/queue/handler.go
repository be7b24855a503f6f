package queue

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/handler"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/service/assignment"
	"github.com/minatoh/spa-desk/internal/service/queue"
)

type Handler struct {
	queue       *queue.Service
	assignments *assignment.Service
}

func NewHandler(queueSvc *queue.Service, assignments *assignment.Service) *Handler {
	return &Handler{queue: queueSvc, assignments: assignments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	q := r.Group("/queue")
	{
		q.GET("", h.List)
		q.POST("/promote", h.Promote)
		q.POST("/:id/reorder", h.Reorder)
		q.POST("/:id/auto-assign", h.AutoAssign)
		q.POST("/:id/no-show", h.NoShow)
	}
}

func (h *Handler) List(c *gin.Context) {
	entries, err := h.queue.Entries(c.Request.Context(), time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, entries)
}

// Promote pushes late bookings to the front of the queue. Listing the queue
// never reorders it; this is the operator-triggered path.
func (h *Handler) Promote(c *gin.Context) {
	entries, err := h.queue.PromoteLate(c.Request.Context(), time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, entries)
}

func (h *Handler) Reorder(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	var req model.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.queue.Reorder(c.Request.Context(), clientID, req.Position); err != nil {
		handler.RespondError(c, err)
		return
	}

	entries, err := h.queue.Entries(c.Request.Context(), time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, entries)
}

func (h *Handler) AutoAssign(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	result, err := h.assignments.AutoAssign(c.Request.Context(), clientID, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, result)
}

func (h *Handler) NoShow(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	if err := h.assignments.NoShow(c.Request.Context(), clientID, time.Now()); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
