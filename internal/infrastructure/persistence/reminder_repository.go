package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/notification"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReminderRepository implements ReminderRepository using GORM
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GormReminderRepository
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// Save creates or updates a reminder
func (r *GormReminderRepository) Save(ctx context.Context, reminder *notification.Reminder) error {
	model := models.ReminderModelFromDomain(reminder)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a reminder by its ID
func (r *GormReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Reminder, error) {
	var model models.ReminderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPending returns all pending reminders, soonest due first
func (r *GormReminderRepository) FindPending(ctx context.Context) ([]*notification.Reminder, error) {
	var reminderModels []models.ReminderModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", notification.ReminderStatusPending).
		Order("due_date ASC").
		Find(&reminderModels).Error; err != nil {
		return nil, err
	}

	reminders := make([]*notification.Reminder, len(reminderModels))
	for i := range reminderModels {
		reminders[i] = reminderModels[i].ToDomain()
	}
	return reminders, nil
}

// ExistsForAccountOnDate reports whether a reminder was already created
// for the account on the given calendar day
func (r *GormReminderRepository) ExistsForAccountOnDate(ctx context.Context, accountID uuid.UUID, date time.Time) (bool, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReminderModel{}).
		Where("account_id = ? AND remind_date >= ? AND remind_date < ?", accountID, dayStart, dayEnd).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormReminderRepository implements ReminderRepository
var _ notification.ReminderRepository = (*GormReminderRepository)(nil)
