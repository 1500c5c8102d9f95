package ledger

import (
	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// PendingEpsilon is the smallest net balance, in paise, that keeps a
// customer off the pending lists. Anything at or below one minor unit is
// treated as settled.
const PendingEpsilon = int64(1)

// BalanceSummary is the derived position of a customer (or the whole
// book). Never persisted; recomputed from lending accounts on each read.
type BalanceSummary struct {
	OutstandingToCollect valueobject.Money `json:"outstanding_to_collect"`
	OutstandingToPay     valueobject.Money `json:"outstanding_to_pay"`
	Net                  valueobject.Money `json:"net"`
}

// NewBalanceSummary derives the net from collect and pay totals
func NewBalanceSummary(toCollect, toPay valueobject.Money) BalanceSummary {
	return BalanceSummary{
		OutstandingToCollect: toCollect,
		OutstandingToPay:     toPay,
		Net:                  toCollect.Subtract(toPay),
	}
}

// IsSettled reports whether the net balance falls within the epsilon
// tolerance and the customer should stay off pending lists.
func (b BalanceSummary) IsSettled() bool {
	return b.Net.Abs().Paise() <= PendingEpsilon
}

// CustomerBalance pairs a customer with their derived position, used by
// the outstanding lists.
type CustomerBalance struct {
	CustomerID   uuid.UUID         `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	Summary      BalanceSummary    `json:"summary"`
}
