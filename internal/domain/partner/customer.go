package partner

import (
	"strings"

	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// CustomerStatus represents the lifecycle state of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// Customer is the aggregate root for a shop customer. Phone numbers are
// unique across the book; deactivation is a soft delete so historical
// accounts and ledger entries keep their reference.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Phone   string
	Address string
	IDProof string
	Notes   string
	Status  CustomerStatus

	// Running totals across the customer's lending accounts, kept in sync
	// by the loan service on every disbursal. Convenience for list views;
	// the ledger stays the source of truth.
	TotalGiven valueobject.Money
	TotalTaken valueobject.Money
}

// NewCustomer creates a new active customer
func NewCustomer(name, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer phone is required")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           strings.TrimSpace(address),
		Status:            CustomerStatusActive,
	}, nil
}

// Update modifies the customer's mutable details
func (c *Customer) Update(name, phone, address, idProof, notes string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer phone is required")
	}
	c.Name = name
	c.Phone = phone
	c.Address = strings.TrimSpace(address)
	c.IDProof = idProof
	c.Notes = notes
	c.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	c.Status = CustomerStatusInactive
	c.IncrementVersion()
	return nil
}

// Activate restores a deactivated customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.IncrementVersion()
	return nil
}

// RecordGiven adds a disbursed amount to the customer's given total
func (c *Customer) RecordGiven(amount valueobject.Money) {
	c.TotalGiven = c.TotalGiven.Add(amount)
	c.IncrementVersion()
}

// RecordTaken adds a borrowed amount to the customer's taken total
func (c *Customer) RecordTaken(amount valueobject.Money) {
	c.TotalTaken = c.TotalTaken.Add(amount)
	c.IncrementVersion()
}

// IsActive returns true if the customer can open new accounts
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
