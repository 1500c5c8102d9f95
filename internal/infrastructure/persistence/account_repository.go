package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// openStatuses are the stored statuses that still accept payments. The
// overdue state is derived at read time and never appears in the column.
var openStatuses = []string{
	string(lending.AccountStatusActive),
	string(lending.AccountStatusPartiallyPaid),
}

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *lending.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates the account only if the stored version still equals
// expectedVersion. A lost race surfaces as ErrConcurrencyConflict; the
// caller is expected to reload and retry. Select("*") forces every column
// into the SET clause, so a closing payment persists
// outstanding_principal = 0 instead of the zero being skipped as an empty
// struct field.
func (r *GormAccountRepository) SaveWithLock(ctx context.Context, account *lending.Account, expectedVersion int) error {
	model := models.AccountModelFromDomain(account)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", account.ID, expectedVersion).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccountNumber finds an account by its human-facing number
func (r *GormAccountRepository) FindByAccountNumber(ctx context.Context, number string) (*lending.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).Where("account_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns all accounts for a customer, newest first
func (r *GormAccountRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*lending.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("taken_date DESC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toDomainAccounts(accountModels), nil
}

// FindByProduct finds accounts of one product type matching the filter
func (r *GormAccountRepository) FindByProduct(ctx context.Context, productType lending.ProductType, filter shared.Filter) ([]*lending.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("product_type = ?", productType)
	if filter.Search != "" {
		query = query.Where("account_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.AccountModel
	query = applyOrdering(query, filter, "taken_date DESC")
	query = applyPagination(query, filter)
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainAccounts(accountModels), total, nil
}

// FindOutstanding returns open accounts with money still owed, optionally
// restricted to one direction. Defaulted accounts are written off and
// excluded by the status filter.
func (r *GormAccountRepository) FindOutstanding(ctx context.Context, direction *lending.Direction) ([]*lending.Account, error) {
	query := r.db.WithContext(ctx).
		Where("status IN ?", openStatuses).
		Where("outstanding_principal > 0")
	if direction != nil {
		query = query.Where("direction = ?", *direction)
	}

	var accountModels []models.AccountModel
	if err := query.Order("taken_date DESC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toDomainAccounts(accountModels), nil
}

// FindOverdue returns open accounts whose due date has passed as of now
func (r *GormAccountRepository) FindOverdue(ctx context.Context, now time.Time) ([]*lending.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", openStatuses).
		Where("outstanding_principal > 0").
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Order("due_date ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toDomainAccounts(accountModels), nil
}

// FindDueWithin returns open accounts due between now and now+within
func (r *GormAccountRepository) FindDueWithin(ctx context.Context, now time.Time, within time.Duration) ([]*lending.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", openStatuses).
		Where("outstanding_principal > 0").
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", now, now.Add(within)).
		Order("due_date ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toDomainAccounts(accountModels), nil
}

// FindAll finds accounts matching the filter with a total count
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*lending.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if filter.Search != "" {
		query = query.Where("account_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.AccountModel
	query = applyOrdering(query, filter, "taken_date DESC")
	query = applyPagination(query, filter)
	if err := query.Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainAccounts(accountModels), total, nil
}

// CountByStatus counts accounts in the given stored status
func (r *GormAccountRepository) CountByStatus(ctx context.Context, status lending.AccountStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextAccountSequence returns the next per-day sequence for a prefix by
// counting existing numbers under the same day stem.
func (r *GormAccountRepository) NextAccountSequence(ctx context.Context, prefix string, date time.Time) (int, error) {
	stem := fmt.Sprintf("%s-%s-%%", prefix, date.Format("20060102"))
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("account_number LIKE ?", stem).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

func toDomainAccounts(accountModels []models.AccountModel) []*lending.Account {
	accounts := make([]*lending.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	return accounts
}

// Ensure GormAccountRepository implements AccountRepository
var _ lending.AccountRepository = (*GormAccountRepository)(nil)
