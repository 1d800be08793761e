package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	cases := []struct {
		price    string
		discount float64
		qty      int
		want     string
	}{
		{"10.00", 0, 3, "30"},
		{"10.00", 10, 2, "18"},
		{"8.99", 25, 3, "20.23"},
		{"0.10", 33.3, 1, "0.07"},
		{"5.00", 100, 4, "0"},
	}
	for _, tc := range cases {
		p := Product{Price: decimal.RequireFromString(tc.price), Discount: tc.discount}
		got := p.LineTotal(tc.qty)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "%s x%d -%v%% = %s", tc.price, tc.qty, tc.discount, got)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleCustomer))
	assert.True(t, ValidRole(RoleShopkeeper))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("guest"))
}
