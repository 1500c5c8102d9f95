package lending

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductType identifies which lending product an account belongs to
type ProductType string

const (
	ProductGoldLoan   ProductType = "GOLD_LOAN"
	ProductSilverLoan ProductType = "SILVER_LOAN"
	ProductCashLoan   ProductType = "CASH_LOAN"
	ProductUdhar      ProductType = "UDHAR"
)

// Direction says who owes whom. GIVEN means the business lent money and
// collects; TAKEN means the business borrowed (udhar only) and pays back.
type Direction string

const (
	DirectionGiven Direction = "GIVEN"
	DirectionTaken Direction = "TAKEN"
)

// AccountStatus represents the stored lifecycle state of an account.
// OVERDUE is deliberately absent: it is derived at read time from the due
// date so a status never goes stale overnight.
type AccountStatus string

const (
	AccountStatusActive        AccountStatus = "ACTIVE"
	AccountStatusPartiallyPaid AccountStatus = "PARTIALLY_PAID"
	AccountStatusClosed        AccountStatus = "CLOSED"
	AccountStatusOverdue       AccountStatus = "OVERDUE"
	AccountStatusDefaulted     AccountStatus = "DEFAULTED"
)

// PaymentMethod is how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodUPI      PaymentMethod = "UPI"
	PaymentMethodBank     PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque   PaymentMethod = "CHEQUE"
)

// PaymentRecord is an immutable record of one payment applied to an account
type PaymentRecord struct {
	ID        uuid.UUID          `json:"id"`
	Date      time.Time          `json:"date"`
	Principal valueobject.Money  `json:"principal"`
	Interest  valueobject.Money  `json:"interest"`
	Method    PaymentMethod      `json:"method"`
	Reference string             `json:"reference,omitempty"`
}

// PaymentRecords is stored as a JSON column alongside the account row
type PaymentRecords []PaymentRecord

// Value implements driver.Valuer for database storage
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan PaymentRecords: unsupported type %T", value)
	}
	return json.Unmarshal(data, p)
}

// PledgeItem describes one pledged ornament on a gold or silver loan
type PledgeItem struct {
	Name           string            `json:"name"`
	WeightGrams    decimal.Decimal   `json:"weight_grams"`
	PurityKarat    decimal.Decimal   `json:"purity_karat,omitempty"`
	EstimatedValue valueobject.Money `json:"estimated_value"`
}

// PledgeItems is stored as a JSON column
type PledgeItems []PledgeItem

// Value implements driver.Valuer
func (p PledgeItems) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (p *PledgeItems) Scan(value interface{}) error {
	if value == nil {
		*p = PledgeItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan PledgeItems: unsupported type %T", value)
	}
	return json.Unmarshal(data, p)
}

// Account is the aggregate root for every lending product: pledge loans
// (gold/silver), plain cash loans and informal udhar. One aggregate keeps
// the payment and status machinery in a single place; the product type
// only gates pledge items and direction.
type Account struct {
	shared.BaseAggregateRoot
	AccountNumber        string
	CustomerID           uuid.UUID
	ProductType          ProductType
	Direction            Direction
	Principal            valueobject.Money
	OutstandingPrincipal valueobject.Money
	MonthlyRatePercent   decimal.Decimal
	Status               AccountStatus
	TakenDate            time.Time
	DueDate              time.Time
	ClosureDate          *time.Time
	PaymentRecords       PaymentRecords
	PledgeItems          PledgeItems
	Notes                string
}

// NewAccount opens a lending account. The principal starts fully
// outstanding.
func NewAccount(
	accountNumber string,
	customerID uuid.UUID,
	productType ProductType,
	direction Direction,
	principal valueobject.Money,
	monthlyRatePercent decimal.Decimal,
	takenDate, dueDate time.Time,
) (*Account, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer ID is required")
	}
	if !principal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Principal must be positive")
	}
	if monthlyRatePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Interest rate cannot be negative")
	}
	switch productType {
	case ProductGoldLoan, ProductSilverLoan, ProductCashLoan:
		if direction != DirectionGiven {
			return nil, shared.NewDomainError("INVALID_INPUT", "Loans can only be given, not taken")
		}
	case ProductUdhar:
		if direction != DirectionGiven && direction != DirectionTaken {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid direction")
		}
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown product type: %s", productType))
	}
	if !dueDate.IsZero() && dueDate.Before(takenDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date cannot be before taken date")
	}

	return &Account{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		AccountNumber:        accountNumber,
		CustomerID:           customerID,
		ProductType:          productType,
		Direction:            direction,
		Principal:            principal,
		OutstandingPrincipal: principal,
		MonthlyRatePercent:   monthlyRatePercent,
		Status:               AccountStatusActive,
		TakenDate:            takenDate,
		DueDate:              dueDate,
		PaymentRecords:       PaymentRecords{},
		PledgeItems:          PledgeItems{},
	}, nil
}

// AttachPledgeItems records the pledged ornaments. Only valid for gold and
// silver loans.
func (a *Account) AttachPledgeItems(items []PledgeItem) error {
	if a.ProductType != ProductGoldLoan && a.ProductType != ProductSilverLoan {
		return shared.NewDomainError("INVALID_INPUT", "Pledge items only apply to gold and silver loans")
	}
	for _, item := range items {
		if item.Name == "" {
			return shared.NewDomainError("INVALID_INPUT", "Pledge item name is required")
		}
		if !item.WeightGrams.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "Pledge item weight must be positive")
		}
	}
	a.PledgeItems = items
	return nil
}

// acceptsPayment reports whether the account can take another payment
func (a *Account) acceptsPayment() bool {
	switch a.Status {
	case AccountStatusActive, AccountStatusPartiallyPaid:
		return true
	}
	return false
}

// ApplyPayment reduces the outstanding principal and records the payment.
// Interest is collected alongside but never reduces the principal owed.
// Validation happens before any mutation so a rejected payment leaves the
// account untouched.
func (a *Account) ApplyPayment(principal, interest valueobject.Money, method PaymentMethod, reference string, date time.Time) (*PaymentRecord, error) {
	if principal.IsNegative() || interest.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amounts cannot be negative")
	}
	if principal.IsZero() && interest.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment must include a principal or interest amount")
	}
	if !a.acceptsPayment() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot apply payment to account in status %s", a.Status))
	}
	if principal.GreaterThan(a.OutstandingPrincipal) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Payment of %s exceeds outstanding principal %s", principal, a.OutstandingPrincipal))
	}

	record := PaymentRecord{
		ID:        uuid.New(),
		Date:      date,
		Principal: principal,
		Interest:  interest,
		Method:    method,
		Reference: reference,
	}
	a.OutstandingPrincipal = a.OutstandingPrincipal.Subtract(principal)
	a.PaymentRecords = append(a.PaymentRecords, record)

	if a.OutstandingPrincipal.IsZero() {
		a.Status = AccountStatusClosed
		closedAt := date
		a.ClosureDate = &closedAt
	} else {
		a.Status = AccountStatusPartiallyPaid
	}
	a.IncrementVersion()
	return &record, nil
}

// MarkDefaulted writes off the account. Terminal.
func (a *Account) MarkDefaulted() error {
	if a.Status == AccountStatusClosed || a.Status == AccountStatusDefaulted {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot default account in status %s", a.Status))
	}
	a.Status = AccountStatusDefaulted
	a.IncrementVersion()
	return nil
}

// IsOverdue reports whether the account is past due with money outstanding
func (a *Account) IsOverdue(now time.Time) bool {
	if a.DueDate.IsZero() {
		return false
	}
	return a.acceptsPayment() && a.OutstandingPrincipal.IsPositive() && now.After(a.DueDate)
}

// EffectiveStatus computes the status as of now. Overdue is derived here
// rather than stored so it is always correct at read time.
func (a *Account) EffectiveStatus(now time.Time) AccountStatus {
	if a.IsOverdue(now) {
		return AccountStatusOverdue
	}
	return a.Status
}

// TotalPaid sums the principal portions of all recorded payments
func (a *Account) TotalPaid() valueobject.Money {
	total := valueobject.Zero()
	for _, r := range a.PaymentRecords {
		total = total.Add(r.Principal)
	}
	return total
}

// TotalInterestCollected sums the interest portions of all payments
func (a *Account) TotalInterestCollected() valueobject.Money {
	total := valueobject.Zero()
	for _, r := range a.PaymentRecords {
		total = total.Add(r.Interest)
	}
	return total
}
