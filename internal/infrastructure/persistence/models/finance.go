package models

import (
	"time"

	"github.com/pawnbook/backend/internal/domain/finance"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// ExpenseModel is the persistence model for expense records
type ExpenseModel struct {
	AggregateModel
	Category    string    `gorm:"size:100;not null;index"`
	Description string    `gorm:"size:500"`
	Amount      int64     `gorm:"not null"`
	ExpenseDate time.Time `gorm:"not null;index"`
	PaidVia     string    `gorm:"size:50"`
}

// TableName specifies the table name
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain expense record
func (m *ExpenseModel) ToDomain() *finance.ExpenseRecord {
	e := &finance.ExpenseRecord{
		Category:    m.Category,
		Description: m.Description,
		Amount:      valueobject.NewMoney(m.Amount),
		ExpenseDate: m.ExpenseDate,
		PaidVia:     m.PaidVia,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// ExpenseModelFromDomain builds the model from a domain expense record
func ExpenseModelFromDomain(e *finance.ExpenseRecord) *ExpenseModel {
	m := &ExpenseModel{
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.Paise(),
		ExpenseDate: e.ExpenseDate,
		PaidVia:     e.PaidVia,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
