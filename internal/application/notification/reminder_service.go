package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// DueSoonWindow is how far ahead the daily job looks for upcoming dues
const DueSoonWindow = 3 * 24 * time.Hour

// ReminderResponse represents a reminder in API responses
type ReminderResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	AccountID  uuid.UUID `json:"account_id"`
	Message    string    `json:"message"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
}

// ReminderService generates and manages due-date reminders. The daily
// generation is idempotent per account per day, so the scheduler can
// re-run it safely.
type ReminderService struct {
	reminderRepo notification.ReminderRepository
	accountRepo  lending.AccountRepository
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(reminderRepo notification.ReminderRepository, accountRepo lending.AccountRepository, logger *zap.Logger) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo, accountRepo: accountRepo, logger: logger}
}

// GenerateDaily creates reminders for accounts overdue or due within the
// window. Returns the number of reminders created. A failure on one
// account is logged and skipped.
func (s *ReminderService) GenerateDaily(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.accountRepo.FindOverdue(ctx, now)
	if err != nil {
		return 0, err
	}
	dueSoon, err := s.accountRepo.FindDueWithin(ctx, now, DueSoonWindow)
	if err != nil {
		return 0, err
	}

	created := 0
	seen := make(map[uuid.UUID]bool)
	for _, a := range append(overdue, dueSoon...) {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true

		exists, err := s.reminderRepo.ExistsForAccountOnDate(ctx, a.ID, now)
		if err != nil {
			s.logger.Warn("reminder dedup check failed",
				zap.String("account_number", a.AccountNumber), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		message := fmt.Sprintf("Account %s: %s due on %s, outstanding %s",
			a.AccountNumber, a.ProductType, a.DueDate.Format("02 Jan 2006"), a.OutstandingPrincipal)
		if a.IsOverdue(now) {
			message = fmt.Sprintf("Account %s is OVERDUE since %s, outstanding %s",
				a.AccountNumber, a.DueDate.Format("02 Jan 2006"), a.OutstandingPrincipal)
		}

		reminder, err := notification.NewReminder(a.CustomerID, a.ID, message, a.DueDate, now)
		if err != nil {
			s.logger.Warn("skipping invalid reminder",
				zap.String("account_number", a.AccountNumber), zap.Error(err))
			continue
		}
		if err := s.reminderRepo.Save(ctx, reminder); err != nil {
			s.logger.Warn("failed to save reminder",
				zap.String("account_number", a.AccountNumber), zap.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("daily reminders generated", zap.Int("created", created))
	return created, nil
}

// ListPending returns undelivered reminders
func (s *ReminderService) ListPending(ctx context.Context) ([]ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		items = append(items, ReminderResponse{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			AccountID:  r.AccountID,
			Message:    r.Message,
			DueDate:    r.DueDate,
			Status:     string(r.Status),
		})
	}
	return items, nil
}

// Dismiss hides a reminder
func (s *ReminderService) Dismiss(ctx context.Context, reminderID uuid.UUID) error {
	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		return err
	}
	if err := reminder.Dismiss(); err != nil {
		return err
	}
	return s.reminderRepo.Save(ctx, reminder)
}
