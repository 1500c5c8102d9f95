package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to register a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"required,phone"`
	Address string `json:"address" binding:"max=500"`
	IDProof string `json:"id_proof" binding:"max=100"`
	Notes   string `json:"notes" binding:"max=1000"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,phone"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	IDProof *string `json:"id_proof" binding:"omitempty,max=100"`
	Notes   *string `json:"notes" binding:"omitempty,max=1000"`
}

// CustomerResponse represents a customer in API responses. Money fields
// are paise.
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	IDProof    string    `json:"id_proof"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	TotalGiven int64     `json:"total_given"`
	TotalTaken int64     `json:"total_taken"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToCustomerResponse converts a domain customer to its API shape
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		IDProof:    c.IDProof,
		Notes:      c.Notes,
		Status:     string(c.Status),
		TotalGiven: c.TotalGiven.Paise(),
		TotalTaken: c.TotalTaken.Paise(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}
