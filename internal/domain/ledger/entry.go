package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// EntryType classifies what business event produced a ledger entry
type EntryType string

const (
	EntryLoanDisbursed EntryType = "LOAN_DISBURSED"
	EntryLoanPayment   EntryType = "LOAN_PAYMENT"
	EntryUdharGiven    EntryType = "UDHAR_GIVEN"
	EntryUdharTaken    EntryType = "UDHAR_TAKEN"
	EntryUdharPayment  EntryType = "UDHAR_PAYMENT"
	EntryUdharClosure  EntryType = "UDHAR_CLOSURE"
	EntryTradeBuy      EntryType = "TRADE_BUY"
	EntryTradeSell     EntryType = "TRADE_SELL"
	EntryExpense       EntryType = "EXPENSE"
)

// Direction is the cash flow relative to the business
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Sign returns +1 for money coming in, -1 for money going out
func (d Direction) Sign() int64 {
	if d == DirectionIn {
		return 1
	}
	return -1
}

// Entry is one immutable line in the unified transaction ledger. Entries
// are append-only; corrections happen through compensating entries, never
// by editing history. Seq is assigned by the database on insert and gives
// a stable ordering for entries sharing a timestamp.
type Entry struct {
	ID         uuid.UUID
	Seq        int64
	EntryType  EntryType
	Direction  Direction
	Amount     valueobject.Money
	CustomerID *uuid.UUID
	AccountID  *uuid.UUID
	Note       string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// NewEntry creates a ledger entry. Amount must be strictly positive; the
// direction carries the sign.
func NewEntry(entryType EntryType, direction Direction, amount valueobject.Money, occurredAt time.Time) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Ledger amount must be positive")
	}
	switch entryType {
	case EntryLoanDisbursed, EntryLoanPayment, EntryUdharGiven, EntryUdharTaken,
		EntryUdharPayment, EntryUdharClosure, EntryTradeBuy, EntryTradeSell, EntryExpense:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown ledger entry type")
	}
	if direction != DirectionIn && direction != DirectionOut {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid ledger direction")
	}
	return &Entry{
		ID:         uuid.New(),
		EntryType:  entryType,
		Direction:  direction,
		Amount:     amount,
		OccurredAt: occurredAt,
		CreatedAt:  time.Now(),
	}, nil
}

// ForCustomer attaches the customer reference
func (e *Entry) ForCustomer(customerID uuid.UUID) *Entry {
	e.CustomerID = &customerID
	return e
}

// ForAccount attaches the lending account reference
func (e *Entry) ForAccount(accountID uuid.UUID) *Entry {
	e.AccountID = &accountID
	return e
}

// WithNote attaches a free-form note
func (e *Entry) WithNote(note string) *Entry {
	e.Note = note
	return e
}

// SignedAmount returns the amount with the direction's sign applied
func (e *Entry) SignedAmount() valueobject.Money {
	if e.Direction == DirectionOut {
		return e.Amount.Neg()
	}
	return e.Amount
}
