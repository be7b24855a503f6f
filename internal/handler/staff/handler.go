package staff

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/handler"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/service/assignment"
	"github.com/minatoh/spa-desk/internal/service/roster"
)

type Handler struct {
	roster      *roster.Service
	assignments *assignment.Service
}

func NewHandler(rosterSvc *roster.Service, assignments *assignment.Service) *Handler {
	return &Handler{roster: rosterSvc, assignments: assignments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	therapists := r.Group("/therapists")
	{
		therapists.GET("", h.List)
		therapists.GET("/priority", h.Priority)
		therapists.POST("", h.Create)
		therapists.GET("/:id", h.Get)
		therapists.PUT("/:id", h.Update)
		therapists.DELETE("/:id", h.Delete)
		therapists.PATCH("/:id/status", h.SetStatus)
		therapists.PATCH("/:id/commission", h.SetCommission)
		therapists.POST("/:id/complete", h.Complete)
	}
}

func (h *Handler) List(c *gin.Context) {
	therapists, err := h.roster.ListTherapists(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, therapists)
}

// Priority is the manual staff dashboard: the full roster under an
// operator-selected sort mode.
func (h *Handler) Priority(c *gin.Context) {
	mode, ok := assignment.ParseSortMode(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid sort mode"})
		return
	}

	therapists, err := h.roster.ListTherapists(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, assignment.Rank(therapists, mode))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	therapist, err := h.roster.CreateTherapist(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusCreated, therapist)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	therapist, err := h.roster.GetTherapist(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, therapist)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	var req model.UpdateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	therapist, err := h.roster.UpdateTherapist(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, therapist)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	if err := h.roster.DeleteTherapist(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	therapist, err := h.roster.SetStatus(c.Request.Context(), id, &req, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, therapist)
}

func (h *Handler) SetCommission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	var req model.SetCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	therapist, err := h.roster.SetCommission(c.Request.Context(), id, req.CommissionRate)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, therapist)
}

// Complete marks the therapist's in-progress service as finished; requires
// an explicit operator action, never a timer.
func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid therapist ID"})
		return
	}

	if err := h.assignments.Complete(c.Request.Context(), id, time.Now()); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
