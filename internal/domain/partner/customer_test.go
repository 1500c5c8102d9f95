package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name      string
		custName  string
		phone     string
		address   string
		wantErr   bool
	}{
		{"valid customer", "Ramesh Kumar", "9876543210", "12 MG Road", false},
		{"trims whitespace", "  Ramesh  ", " 9876543210 ", "", false},
		{"missing name", "", "9876543210", "", true},
		{"missing phone", "Ramesh", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.custName, tt.phone, tt.address)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CustomerStatusActive, c.Status)
			assert.Equal(t, 1, c.GetVersion())
			assert.NotEqual(t, "", c.Name)
		})
	}
}

func TestCustomer_StatusTransitions(t *testing.T) {
	c, err := NewCustomer("Ramesh Kumar", "9876543210", "")
	require.NoError(t, err)

	require.NoError(t, c.Deactivate())
	assert.Equal(t, CustomerStatusInactive, c.Status)
	assert.False(t, c.IsActive())
	assert.Equal(t, 2, c.GetVersion())

	err = c.Deactivate()
	assert.Error(t, err)

	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())

	err = c.Activate()
	assert.Error(t, err)
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("Ramesh Kumar", "9876543210", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Suresh Kumar", "9123456780", "45 Park St", "AADHAAR-1234", "regular"))
	assert.Equal(t, "Suresh Kumar", c.Name)
	assert.Equal(t, "9123456780", c.Phone)
	assert.Equal(t, 2, c.GetVersion())

	err = c.Update("", "9123456780", "", "", "")
	assert.Error(t, err)
}
