package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ledger *repositories.Ledger
}

func NewHealthHandler(ledger *repositories.Ledger) *HealthHandler {
	return &HealthHandler{ledger: ledger}
}

// HealthCheck reports liveness and database reachability
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.ledger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
