package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ledgerOrder sorts by business date, with the insert sequence breaking
// ties between entries sharing a timestamp.
const ledgerOrder = "occurred_at DESC, seq DESC"

// GormEntryRepository implements EntryRepository using GORM. The ledger is
// append-only; this type has no update or delete methods on purpose.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Append inserts the entry and fills in its database-assigned Seq
func (r *GormEntryRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	model := models.EntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	entry.Seq = model.Seq
	return nil
}

// FindByID finds an entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns the customer's entries newest first
func (r *GormEntryRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EntryModel{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []models.EntryModel
	query = query.Order(ledgerOrder)
	query = applyPagination(query, filter)
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainEntries(entryModels), total, nil
}

// FindAll finds entries matching the filter with a total count
func (r *GormEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*ledger.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EntryModel{})
	if filter.Search != "" {
		query = query.Where("note ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entryModels []models.EntryModel
	query = query.Order(ledgerOrder)
	query = applyPagination(query, filter)
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainEntries(entryModels), total, nil
}

// FindBetween returns all entries in [from, to) ordered newest first
func (r *GormEntryRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*ledger.Entry, error) {
	var entryModels []models.EntryModel
	if err := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at < ?", from, to).
		Order(ledgerOrder).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// SumByType sums entry amounts of one type over [from, to)
func (r *GormEntryRepository) SumByType(ctx context.Context, entryType ledger.EntryType, from, to time.Time) (valueobject.Money, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.EntryModel{}).
		Where("entry_type = ? AND occurred_at >= ? AND occurred_at < ?", entryType, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.Zero(), err
	}
	return valueobject.NewMoney(total), nil
}

// CountByCustomer counts the customer's ledger entries
func (r *GormEntryRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EntryModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainEntries(entryModels []models.EntryModel) []*ledger.Entry {
	entries := make([]*ledger.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
