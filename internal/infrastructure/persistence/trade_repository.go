package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/pawnbook/backend/internal/domain/trading"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTradeRepository implements TradeRepository using GORM
type GormTradeRepository struct {
	db *gorm.DB
}

// NewGormTradeRepository creates a new GormTradeRepository
func NewGormTradeRepository(db *gorm.DB) *GormTradeRepository {
	return &GormTradeRepository{db: db}
}

// Save creates or updates a trade
func (r *GormTradeRepository) Save(ctx context.Context, trade *trading.Trade) error {
	model := models.TradeModelFromDomain(trade)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a trade by its ID
func (r *GormTradeRepository) FindByID(ctx context.Context, id uuid.UUID) (*trading.Trade, error) {
	var model models.TradeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds trades matching the filter with a total count
func (r *GormTradeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trading.Trade, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TradeModel{})
	if filter.Search != "" {
		query = query.Where("party_name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tradeModels []models.TradeModel
	query = applyOrdering(query, filter, "trade_date DESC")
	query = applyPagination(query, filter)
	if err := query.Find(&tradeModels).Error; err != nil {
		return nil, 0, err
	}

	trades := make([]*trading.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = tradeModels[i].ToDomain()
	}
	return trades, total, nil
}

// FindBetween returns all trades in [from, to) ordered newest first
func (r *GormTradeRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*trading.Trade, error) {
	var tradeModels []models.TradeModel
	if err := r.db.WithContext(ctx).
		Where("trade_date >= ? AND trade_date < ?", from, to).
		Order("trade_date DESC").
		Find(&tradeModels).Error; err != nil {
		return nil, err
	}

	trades := make([]*trading.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = tradeModels[i].ToDomain()
	}
	return trades, nil
}

// Summarize aggregates trades by metal and side over [from, to)
func (r *GormTradeRepository) Summarize(ctx context.Context, from, to time.Time) ([]trading.TradeSummary, error) {
	type summaryRow struct {
		Metal       string
		Kind        string
		TradeCount  int64
		TotalWeight decimal.Decimal
		TotalAmount int64
	}

	var rows []summaryRow
	if err := r.db.WithContext(ctx).
		Model(&models.TradeModel{}).
		Select("metal, kind, COUNT(*) AS trade_count, COALESCE(SUM(weight_grams), 0) AS total_weight, COALESCE(SUM(amount), 0) AS total_amount").
		Where("trade_date >= ? AND trade_date < ?", from, to).
		Group("metal, kind").
		Order("metal, kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]trading.TradeSummary, len(rows))
	for i, row := range rows {
		summaries[i] = trading.TradeSummary{
			Metal:       trading.Metal(row.Metal),
			Kind:        trading.TradeKind(row.Kind),
			TradeCount:  row.TradeCount,
			TotalWeight: row.TotalWeight.String(),
			TotalAmount: valueobject.NewMoney(row.TotalAmount),
		}
	}
	return summaries, nil
}

// Ensure GormTradeRepository implements TradeRepository
var _ trading.TradeRepository = (*GormTradeRepository)(nil)
