package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/ledger"
)

// EntryResponse is one ledger line in API responses. Amounts are paise.
type EntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	Seq        int64      `json:"seq"`
	EntryType  string     `json:"entry_type"`
	Direction  string     `json:"direction"`
	Amount     int64      `json:"amount"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	AccountID  *uuid.UUID `json:"account_id,omitempty"`
	Note       string     `json:"note,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// ToEntryResponse converts a domain entry to its API shape
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Seq:        e.Seq,
		EntryType:  string(e.EntryType),
		Direction:  string(e.Direction),
		Amount:     e.Amount.Paise(),
		CustomerID: e.CustomerID,
		AccountID:  e.AccountID,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
	}
}

// BalanceSummaryResponse is a customer's derived position
type BalanceSummaryResponse struct {
	OutstandingToCollect int64 `json:"outstanding_to_collect"`
	OutstandingToPay     int64 `json:"outstanding_to_pay"`
	Net                  int64 `json:"net"`
}

// ToBalanceSummaryResponse converts the domain summary
func ToBalanceSummaryResponse(s ledger.BalanceSummary) BalanceSummaryResponse {
	return BalanceSummaryResponse{
		OutstandingToCollect: s.OutstandingToCollect.Paise(),
		OutstandingToPay:     s.OutstandingToPay.Paise(),
		Net:                  s.Net.Paise(),
	}
}

// CustomerBalanceResponse is one row of an outstanding list
type CustomerBalanceResponse struct {
	CustomerID   uuid.UUID              `json:"customer_id"`
	CustomerName string                 `json:"customer_name"`
	Phone        string                 `json:"phone"`
	Summary      BalanceSummaryResponse `json:"summary"`
}

// OutstandingListResponse is the full "who owes" view
type OutstandingListResponse struct {
	Direction string                    `json:"direction"`
	Total     int64                     `json:"total"`
	Customers []CustomerBalanceResponse `json:"customers"`
}
