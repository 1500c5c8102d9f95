package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/notification"
)

// ReminderModel is the persistence model for due-date reminders
type ReminderModel struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;index:idx_reminders_account_date"`
	Message    string    `gorm:"size:500;not null"`
	DueDate    time.Time `gorm:"not null"`
	RemindDate time.Time `gorm:"not null;index:idx_reminders_account_date"`
	Status     string    `gorm:"size:20;not null;default:'PENDING';index"`
}

// TableName specifies the table name
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToDomain converts the model to a domain reminder
func (m *ReminderModel) ToDomain() *notification.Reminder {
	return &notification.Reminder{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		AccountID:  m.AccountID,
		Message:    m.Message,
		DueDate:    m.DueDate,
		RemindDate: m.RemindDate,
		Status:     notification.ReminderStatus(m.Status),
	}
}

// ReminderModelFromDomain builds the model from a domain reminder
func ReminderModelFromDomain(r *notification.Reminder) *ReminderModel {
	m := &ReminderModel{
		CustomerID: r.CustomerID,
		AccountID:  r.AccountID,
		Message:    r.Message,
		DueDate:    r.DueDate,
		RemindDate: r.RemindDate,
		Status:     string(r.Status),
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
