package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pawnbook/backend/internal/infrastructure/persistence"
)

// SystemHandler serves health and build info endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// Health reports liveness plus database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		dbStatus = "unreachable"
	}
	h.Success(c, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}

// Info reports basic application metadata
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"name": h.appName,
		"env":  h.env,
	})
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/health", h.Health)
		system.GET("/info", h.Info)
	}
}
