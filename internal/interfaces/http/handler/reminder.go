package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	notificationapp "github.com/pawnbook/backend/internal/application/notification"
)

// ReminderHandler handles due-date reminder API endpoints
type ReminderHandler struct {
	BaseHandler
	reminderService *notificationapp.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *notificationapp.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// ListPending returns reminders awaiting action
func (h *ReminderHandler) ListPending(c *gin.Context) {
	resp, err := h.reminderService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Dismiss hides a reminder
func (h *ReminderHandler) Dismiss(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid reminder ID")
		return
	}

	if err := h.reminderService.Dismiss(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"dismissed": true})
}

// Generate runs the reminder job on demand; the nightly schedule calls
// the same path
func (h *ReminderHandler) Generate(c *gin.Context) {
	created, err := h.reminderService.GenerateDaily(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"created": created})
}

// RegisterRoutes registers reminder routes
func (h *ReminderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reminders := rg.Group("/reminders")
	{
		reminders.GET("", h.ListPending)
		reminders.POST("/generate", h.Generate)
		reminders.POST("/:id/dismiss", h.Dismiss)
	}
}
