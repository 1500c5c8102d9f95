package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/lending"
	"github.com/shopspring/decimal"
)

// PledgeItemRequest is one pledged ornament on an open-account request
type PledgeItemRequest struct {
	Name           string          `json:"name" binding:"required,max=200"`
	WeightGrams    decimal.Decimal `json:"weight_grams" binding:"required"`
	PurityKarat    decimal.Decimal `json:"purity_karat"`
	EstimatedValue int64           `json:"estimated_value" binding:"omitempty,paise"`
}

// OpenAccountRequest opens a lending account. Amounts are paise.
type OpenAccountRequest struct {
	CustomerID         uuid.UUID           `json:"customer_id" binding:"required"`
	ProductType        string              `json:"product_type" binding:"required,oneof=GOLD_LOAN SILVER_LOAN CASH_LOAN UDHAR"`
	Direction          string              `json:"direction" binding:"omitempty,oneof=GIVEN TAKEN"`
	Principal          int64               `json:"principal" binding:"required,paise"`
	MonthlyRatePercent decimal.Decimal     `json:"monthly_rate_percent"`
	TakenDate          time.Time           `json:"taken_date" binding:"required"`
	DueDate            time.Time           `json:"due_date"`
	PledgeItems        []PledgeItemRequest `json:"pledge_items" binding:"omitempty,dive"`
	Notes              string              `json:"notes" binding:"max=1000"`
}

// ApplyPaymentRequest applies one payment to an account. At least one of
// principal and interest must be positive.
type ApplyPaymentRequest struct {
	Principal      int64  `json:"principal" binding:"omitempty,paise"`
	Interest       int64  `json:"interest" binding:"omitempty,paise"`
	Method         string `json:"method" binding:"required,oneof=CASH UPI BANK_TRANSFER CHEQUE"`
	Reference      string `json:"reference" binding:"max=100"`
	IdempotencyKey string `json:"idempotency_key" binding:"max=100"`
}

// InterestPreviewRequest asks for one month of interest on an amount
type InterestPreviewRequest struct {
	Outstanding        int64           `form:"outstanding" binding:"required,paise"`
	MonthlyRatePercent decimal.Decimal `form:"monthly_rate_percent" binding:"required"`
}

// PaymentRecordResponse is one payment in API responses
type PaymentRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Principal int64     `json:"principal"`
	Interest  int64     `json:"interest"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
}

// PledgeItemResponse is one pledged ornament in API responses
type PledgeItemResponse struct {
	Name           string          `json:"name"`
	WeightGrams    decimal.Decimal `json:"weight_grams"`
	PurityKarat    decimal.Decimal `json:"purity_karat"`
	EstimatedValue int64           `json:"estimated_value"`
}

// AccountResponse represents a lending account. Status is the effective
// status as of the request, so overdue accounts show OVERDUE.
type AccountResponse struct {
	ID                   uuid.UUID               `json:"id"`
	AccountNumber        string                  `json:"account_number"`
	CustomerID           uuid.UUID               `json:"customer_id"`
	ProductType          string                  `json:"product_type"`
	Direction            string                  `json:"direction"`
	Principal            int64                   `json:"principal"`
	OutstandingPrincipal int64                   `json:"outstanding_principal"`
	MonthlyRatePercent   decimal.Decimal         `json:"monthly_rate_percent"`
	Status               string                  `json:"status"`
	TakenDate            time.Time               `json:"taken_date"`
	DueDate              *time.Time              `json:"due_date,omitempty"`
	ClosureDate          *time.Time              `json:"closure_date,omitempty"`
	PaymentRecords       []PaymentRecordResponse `json:"payment_records"`
	PledgeItems          []PledgeItemResponse    `json:"pledge_items,omitempty"`
	AccruedInterest      int64                   `json:"accrued_interest"`
	Notes                string                  `json:"notes,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
	Version              int                     `json:"version"`
}

// InterestPreviewResponse is the computed monthly interest
type InterestPreviewResponse struct {
	Outstanding        int64           `json:"outstanding"`
	MonthlyRatePercent decimal.Decimal `json:"monthly_rate_percent"`
	MonthlyInterest    int64           `json:"monthly_interest"`
}

// ToAccountResponse converts a domain account, computing the effective
// status and accrued interest as of now.
func ToAccountResponse(a *lending.Account, now time.Time) AccountResponse {
	payments := make([]PaymentRecordResponse, 0, len(a.PaymentRecords))
	for _, p := range a.PaymentRecords {
		payments = append(payments, PaymentRecordResponse{
			ID:        p.ID,
			Date:      p.Date,
			Principal: p.Principal.Paise(),
			Interest:  p.Interest.Paise(),
			Method:    string(p.Method),
			Reference: p.Reference,
		})
	}
	items := make([]PledgeItemResponse, 0, len(a.PledgeItems))
	for _, it := range a.PledgeItems {
		items = append(items, PledgeItemResponse{
			Name:           it.Name,
			WeightGrams:    it.WeightGrams,
			PurityKarat:    it.PurityKarat,
			EstimatedValue: it.EstimatedValue.Paise(),
		})
	}

	// AccruedInterest only errors on negative inputs, which persisted
	// accounts never have; a zero fallback is fine.
	accrued, _ := a.AccruedInterest(now)

	resp := AccountResponse{
		ID:                   a.ID,
		AccountNumber:        a.AccountNumber,
		CustomerID:           a.CustomerID,
		ProductType:          string(a.ProductType),
		Direction:            string(a.Direction),
		Principal:            a.Principal.Paise(),
		OutstandingPrincipal: a.OutstandingPrincipal.Paise(),
		MonthlyRatePercent:   a.MonthlyRatePercent,
		Status:               string(a.EffectiveStatus(now)),
		TakenDate:            a.TakenDate,
		ClosureDate:          a.ClosureDate,
		PaymentRecords:       payments,
		PledgeItems:          items,
		AccruedInterest:      accrued.Paise(),
		Notes:                a.Notes,
		CreatedAt:            a.CreatedAt,
		Version:              a.Version,
	}
	if !a.DueDate.IsZero() {
		due := a.DueDate
		resp.DueDate = &due
	}
	return resp
}
