package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError translates a service error into a status code and a
// {"detail": ...} body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := "Internal server error"

	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status, detail = http.StatusUnprocessableEntity, validationErr.Message
	case errors.Is(err, models.ErrInvalidInput):
		status, detail = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, models.ErrNotFound):
		status, detail = http.StatusNotFound, "Not found"
	case errors.Is(err, models.ErrDuplicateName):
		status, detail = http.StatusBadRequest, models.ErrDuplicateName.Error()
	case errors.Is(err, models.ErrClosedProject):
		status, detail = http.StatusBadRequest, models.ErrClosedProject.Error()
	case errors.Is(err, models.ErrInvalidAmount):
		status, detail = http.StatusBadRequest, models.ErrInvalidAmount.Error()
	case errors.Is(err, models.ErrHasInvestment):
		status, detail = http.StatusBadRequest, models.ErrHasInvestment.Error()
	case errors.Is(err, models.ErrConflict):
		status, detail = http.StatusConflict, models.ErrConflict.Error()
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 422 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request data: " + err.Error()})
		return false
	}
	return true
}
