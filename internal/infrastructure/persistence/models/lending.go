package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for lending accounts
type AccountModel struct {
	AggregateModel
	AccountNumber        string                 `gorm:"size:30;not null;uniqueIndex"`
	CustomerID           uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProductType          string                 `gorm:"size:20;not null;index"`
	Direction            string                 `gorm:"size:10;not null"`
	Principal            int64                  `gorm:"not null"`
	OutstandingPrincipal int64                  `gorm:"not null"`
	MonthlyRatePercent   decimal.Decimal        `gorm:"type:decimal(8,4);not null"`
	Status               string                 `gorm:"size:20;not null;index"`
	TakenDate            time.Time              `gorm:"not null;index"`
	DueDate              *time.Time             `gorm:"index"`
	ClosureDate          *time.Time
	PaymentRecords       lending.PaymentRecords `gorm:"type:jsonb;not null;default:'[]'"`
	PledgeItems          lending.PledgeItems    `gorm:"type:jsonb;not null;default:'[]'"`
	Notes                string                 `gorm:"size:1000"`
}

// TableName specifies the table name
func (AccountModel) TableName() string {
	return "lending_accounts"
}

// ToDomain converts the model to a domain account
func (m *AccountModel) ToDomain() *lending.Account {
	a := &lending.Account{
		AccountNumber:        m.AccountNumber,
		CustomerID:           m.CustomerID,
		ProductType:          lending.ProductType(m.ProductType),
		Direction:            lending.Direction(m.Direction),
		Principal:            valueobject.NewMoney(m.Principal),
		OutstandingPrincipal: valueobject.NewMoney(m.OutstandingPrincipal),
		MonthlyRatePercent:   m.MonthlyRatePercent,
		Status:               lending.AccountStatus(m.Status),
		TakenDate:            m.TakenDate,
		ClosureDate:          m.ClosureDate,
		PaymentRecords:       m.PaymentRecords,
		PledgeItems:          m.PledgeItems,
		Notes:                m.Notes,
	}
	if m.DueDate != nil {
		a.DueDate = *m.DueDate
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// AccountModelFromDomain builds the model from a domain account
func AccountModelFromDomain(a *lending.Account) *AccountModel {
	m := &AccountModel{
		AccountNumber:        a.AccountNumber,
		CustomerID:           a.CustomerID,
		ProductType:          string(a.ProductType),
		Direction:            string(a.Direction),
		Principal:            a.Principal.Paise(),
		OutstandingPrincipal: a.OutstandingPrincipal.Paise(),
		MonthlyRatePercent:   a.MonthlyRatePercent,
		Status:               string(a.Status),
		TakenDate:            a.TakenDate,
		ClosureDate:          a.ClosureDate,
		PaymentRecords:       a.PaymentRecords,
		PledgeItems:          a.PledgeItems,
		Notes:                a.Notes,
	}
	if !a.DueDate.IsZero() {
		due := a.DueDate
		m.DueDate = &due
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}
