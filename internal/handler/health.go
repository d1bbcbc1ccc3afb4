package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GolpiraElmiA/OSRTickets/internal/repository"
)

type HealthHandler struct {
	repo *repository.Repository
}

func NewHealthHandler(repo *repository.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Health reports liveness plus whether the session started degraded (initial
// load from the remote store failed and the table began empty).
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "osrtickets",
		"degraded": h.repo.Degraded(),
		"tickets":  h.repo.Len(),
		"time":     time.Now().Unix(),
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
