package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusPacked.Valid())
	assert.True(t, StatusShipped.Valid())
	assert.True(t, StatusDelivered.Valid())
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestCustomerInfo_Validate(t *testing.T) {
	valid := CustomerInfo{
		Name:    "Anna Andersson",
		Email:   "anna@example.com",
		Phone:   "0701234567",
		Address: "Storgatan 1",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
	}{
		{name: "Missing name", mutate: func(c *CustomerInfo) { c.Name = "" }},
		{name: "Missing email", mutate: func(c *CustomerInfo) { c.Email = "" }},
		{name: "Missing phone", mutate: func(c *CustomerInfo) { c.Phone = "" }},
		{name: "Missing address", mutate: func(c *CustomerInfo) { c.Address = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := valid
			tt.mutate(&info)

			err := info.Validate()

			require.Error(t, err)
			var domainErr *DomainError
			assert.True(t, errors.As(err, &domainErr))
		})
	}
}
