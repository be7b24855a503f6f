package walkin

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

// Handler drives the walk-in flow: pick a service, review ranked candidates,
// check the client in, confirm an assignment.
type Handler struct {
	assignments *assignment.Service
	queue       *queue.Service
}

func NewHandler(assignments *assignment.Service, queueSvc *queue.Service) *Handler {
	return &Handler{assignments: assignments, queue: queueSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	walkins := r.Group("/walkins")
	{
		walkins.GET("/candidates", h.Candidates)
		walkins.POST("", h.CheckIn)
		walkins.POST("/:id/assign", h.Assign)
		walkins.POST("/:id/auto-assign", h.AutoAssign)
	}
}

func (h *Handler) Candidates(c *gin.Context) {
	// An absent service id ranks the whole roster.
	serviceID := uuid.Nil
	if raw := c.Query("service_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid service ID"})
			return
		}
		serviceID = parsed
	}
	pref := model.GenderPreference(c.Query("preferred_gender"))

	list, err := h.assignments.Candidates(c.Request.Context(), serviceID, pref, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, list)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	// Walk-ins never carry a scheduled time; bookings have their own endpoint.
	req.ScheduledTime = nil

	client, err := h.queue.CheckIn(c.Request.Context(), &req, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusCreated, client)
}

type assignRequest struct {
	TherapistID string `json:"therapist_id" binding:"required,uuid"`
}

func (h *Handler) Assign(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	therapistID, err := uuid.Parse(req.TherapistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	result, err := h.assignments.Assign(c.Request.Context(), clientID, therapistID, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, result)
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
