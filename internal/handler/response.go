package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

// RespondOK writes the standard success envelope.
func RespondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// RespondError maps an application error to an HTTP status. Domain outcomes
// (queue full, nobody eligible) are conflicts, not server faults.
func RespondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError

	switch code {
	case apperrors.ErrNotFound:
		status = http.StatusNotFound
	case apperrors.ErrBadRequest,
		apperrors.ErrInvalidService,
		apperrors.ErrInvalidCommissionRate,
		apperrors.ErrInvalidRating:
		status = http.StatusBadRequest
	case apperrors.ErrNoEligibleTherapist,
		apperrors.ErrNoneAvailableNow,
		apperrors.ErrQueueFull:
		status = http.StatusConflict
	}

	body := gin.H{"status": "error", "message": err.Error()}
	if code != 0 {
		body["code"] = code
	}
	c.JSON(status, body)
}
