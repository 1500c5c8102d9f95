package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/finance"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Save creates or updates an expense record
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds expense records matching the filter with a total count
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.ExpenseRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("category ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenseModels []models.ExpenseModel
	query = applyOrdering(query, filter, "expense_date DESC")
	query = applyPagination(query, filter)
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, 0, err
	}

	expenses := make([]*finance.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, total, nil
}

// FindBetween returns all expenses in [from, to) ordered newest first
func (r *GormExpenseRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*finance.ExpenseRecord, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Order("expense_date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]*finance.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// SumByCategory totals expenses per category over [from, to)
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, from, to time.Time) ([]finance.CategoryTotal, error) {
	type totalRow struct {
		Category string
		Count    int64
		Total    int64
	}

	var rows []totalRow
	if err := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Select("category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]finance.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = finance.CategoryTotal{
			Category: row.Category,
			Count:    row.Count,
			Total:    valueobject.NewMoney(row.Total),
		}
	}
	return totals, nil
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
