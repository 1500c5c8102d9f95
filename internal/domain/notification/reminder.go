package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
)

// ReminderStatus is the delivery state of a reminder
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "PENDING"
	ReminderStatusSent      ReminderStatus = "SENT"
	ReminderStatusDismissed ReminderStatus = "DISMISSED"
)

// Reminder is a due-date nudge for one lending account. The daily job
// deduplicates per account per day, so re-running the job is harmless.
type Reminder struct {
	shared.BaseEntity
	CustomerID uuid.UUID
	AccountID  uuid.UUID
	Message    string
	DueDate    time.Time
	RemindDate time.Time
	Status     ReminderStatus
}

// NewReminder creates a pending reminder
func NewReminder(customerID, accountID uuid.UUID, message string, dueDate, remindDate time.Time) (*Reminder, error) {
	if customerID == uuid.Nil || accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reminder requires customer and account")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reminder message is required")
	}
	return &Reminder{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		AccountID:  accountID,
		Message:    message,
		DueDate:    dueDate,
		RemindDate: remindDate,
		Status:     ReminderStatusPending,
	}, nil
}

// MarkSent transitions the reminder to SENT
func (r *Reminder) MarkSent() error {
	if r.Status != ReminderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending reminders can be sent")
	}
	r.Status = ReminderStatusSent
	return nil
}

// Dismiss hides the reminder without sending
func (r *Reminder) Dismiss() error {
	if r.Status == ReminderStatusDismissed {
		return shared.NewDomainError("INVALID_STATE", "Reminder is already dismissed")
	}
	r.Status = ReminderStatusDismissed
	return nil
}

// ReminderRepository defines persistence operations for reminders
type ReminderRepository interface {
	Save(ctx context.Context, reminder *Reminder) error
	FindByID(ctx context.Context, id uuid.UUID) (*Reminder, error)
	FindPending(ctx context.Context) ([]*Reminder, error)
	// ExistsForAccountOnDate backs the per-account per-day deduplication
	ExistsForAccountOnDate(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error)
}
