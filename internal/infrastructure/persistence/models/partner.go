package models

import (
	"github.com/pawnbook/backend/internal/domain/partner"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	AggregateModel
	Name       string `gorm:"size:200;not null;index"`
	Phone      string `gorm:"size:20;not null;uniqueIndex"`
	Address    string `gorm:"size:500"`
	IDProof    string `gorm:"size:100"`
	Notes      string `gorm:"size:1000"`
	Status     string `gorm:"size:20;not null;default:'ACTIVE';index"`
	TotalGiven int64  `gorm:"not null;default:0"`
	TotalTaken int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		IDProof:    m.IDProof,
		Notes:      m.Notes,
		Status:     partner.CustomerStatus(m.Status),
		TotalGiven: valueobject.NewMoney(m.TotalGiven),
		TotalTaken: valueobject.NewMoney(m.TotalTaken),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// CustomerModelFromDomain builds the model from a domain customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		IDProof:    c.IDProof,
		Notes:      c.Notes,
		Status:     string(c.Status),
		TotalGiven: c.TotalGiven.Paise(),
		TotalTaken: c.TotalTaken.Paise(),
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
