package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// EntryModel is the persistence model for ledger entries. Rows are only
// ever inserted; there is no update path. Seq is assigned by the
// database and breaks ties between entries with the same timestamp.
type EntryModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	Seq        int64      `gorm:"autoIncrement;uniqueIndex"`
	EntryType  string     `gorm:"size:20;not null;index"`
	Direction  string     `gorm:"size:5;not null"`
	Amount     int64      `gorm:"not null"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	AccountID  *uuid.UUID `gorm:"type:uuid;index"`
	Note       string     `gorm:"size:500"`
	OccurredAt time.Time  `gorm:"not null;index"`
	CreatedAt  time.Time  `gorm:"not null"`
}

// TableName specifies the table name
func (EntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the model to a domain entry
func (m *EntryModel) ToDomain() *ledger.Entry {
	return &ledger.Entry{
		ID:         m.ID,
		Seq:        m.Seq,
		EntryType:  ledger.EntryType(m.EntryType),
		Direction:  ledger.Direction(m.Direction),
		Amount:     valueobject.NewMoney(m.Amount),
		CustomerID: m.CustomerID,
		AccountID:  m.AccountID,
		Note:       m.Note,
		OccurredAt: m.OccurredAt,
		CreatedAt:  m.CreatedAt,
	}
}

// EntryModelFromDomain builds the model from a domain entry. Seq is left
// zero; the database assigns it on insert.
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	return &EntryModel{
		ID:         e.ID,
		EntryType:  string(e.EntryType),
		Direction:  string(e.Direction),
		Amount:     e.Amount.Paise(),
		CustomerID: e.CustomerID,
		AccountID:  e.AccountID,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}
}
