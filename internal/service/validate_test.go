package service

import (
	"strings"
	"testing"

	"feast-checkout/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *domain.OrderSubmission {
	return &domain.OrderSubmission{
		CustomerName: "Ananya Rao",
		Mobile:       "9994316559",
		Address:      "12 Gandhi Street, Chennai",
		Items: []domain.OrderItem{
			{ID: "KAJU-KATLI-500G", Name: "Kaju Katli 500g", Price: 450, Quantity: 1},
		},
		Subtotal:    450,
		GSTAmount:   22.5,
		TotalAmount: 472.5,
		TotalItems:  1,
	}
}

func TestValidateSubmission_Accepts(t *testing.T) {
	assert.Nil(t, validateSubmission(validSubmission()))
}

func TestValidateSubmission_MobileBoundaries(t *testing.T) {
	tests := []struct {
		mobile string
		ok     bool
	}{
		{"9994316559", true},
		{"6000000000", true},
		{"5123456789", false}, // leading digit below 6
		{"99943165599", false}, // 11 digits
		{"999431655", false},
		{"99943 6559", false},
		{"", false},
	}
	for _, tt := range tests {
		sub := validSubmission()
		sub.Mobile = tt.mobile
		err := validateSubmission(sub)
		if tt.ok {
			assert.Nilf(t, err, "mobile %q should pass", tt.mobile)
		} else {
			require.NotNilf(t, err, "mobile %q should fail", tt.mobile)
			assert.Contains(t, err.Reason, "mobile")
		}
	}
}

func TestValidateSubmission_FieldFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.OrderSubmission)
		reason string
	}{
		{"empty name", func(s *domain.OrderSubmission) { s.CustomerName = "   " }, "customer name is required"},
		{"long name", func(s *domain.OrderSubmission) { s.CustomerName = strings.Repeat("a", 101) }, "at most 100"},
		{"bad email", func(s *domain.OrderSubmission) { s.CustomerEmail = "not-an-email" }, "invalid email"},
		{"long email", func(s *domain.OrderSubmission) {
			s.CustomerEmail = strings.Repeat("a", 250) + "@example.com"
		}, "invalid email"},
		{"empty address", func(s *domain.OrderSubmission) { s.Address = "" }, "address is required"},
		{"long address", func(s *domain.OrderSubmission) { s.Address = strings.Repeat("x", 601) }, "at most 600"},
		{"long instructions", func(s *domain.OrderSubmission) { s.SpecialInstructions = strings.Repeat("x", 501) }, "at most 500"},
		{"no items", func(s *domain.OrderSubmission) { s.Items = nil }, "at least one item"},
		{"item missing id", func(s *domain.OrderSubmission) { s.Items[0].ID = " " }, "item 1: product id is required"},
		{"item missing name", func(s *domain.OrderSubmission) { s.Items[0].Name = "" }, "item 1: product name is required"},
		{"negative item price", func(s *domain.OrderSubmission) { s.Items[0].Price = -1 }, "item 1: price"},
		{"negative quantity", func(s *domain.OrderSubmission) { s.Items[0].Quantity = -2 }, "item 1: quantity"},
		{"negative subtotal", func(s *domain.OrderSubmission) { s.Subtotal = -0.01 }, "subtotal"},
		{"negative gst", func(s *domain.OrderSubmission) { s.GSTAmount = -5 }, "GST amount"},
		{"negative total", func(s *domain.OrderSubmission) { s.TotalAmount = -5 }, "total amount"},
		{"negative total items", func(s *domain.OrderSubmission) { s.TotalItems = -1 }, "total items"},
		{"bogus status", func(s *domain.OrderSubmission) { s.Status = "shipped" }, "invalid order status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(sub)
			err := validateSubmission(sub)
			require.NotNil(t, err)
			assert.Contains(t, err.Reason, tt.reason)
		})
	}
}

// Checks run in a fixed order and the first failure wins: a submission broken
// in several ways reports the earliest check.
func TestValidateSubmission_FirstFailureWins(t *testing.T) {
	sub := validSubmission()
	sub.CustomerName = ""
	sub.Mobile = "123"
	sub.Items = nil

	err := validateSubmission(sub)
	require.NotNil(t, err)
	assert.Equal(t, "customer name is required", err.Reason)
}

func TestValidateSubmission_OptionalFieldsMayBeEmpty(t *testing.T) {
	sub := validSubmission()
	sub.CustomerEmail = ""
	sub.SpecialInstructions = ""
	sub.Status = ""
	assert.Nil(t, validateSubmission(sub))
}
