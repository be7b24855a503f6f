package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minatoh/spa-desk/internal/handler"
	"github.com/minatoh/spa-desk/internal/service/report"
)

type Handler struct {
	reports *report.Service
}

func NewHandler(reports *report.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/daily", h.Daily)
		reports.GET("/summary", h.Summary)
	}
}

func (h *Handler) Daily(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	daily, err := h.reports.Daily(c.Request.Context(), day)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, daily)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusOK, summary)
}
