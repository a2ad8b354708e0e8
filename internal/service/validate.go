package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"feast-checkout/internal/domain"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// validateSubmission runs the structural checks in a fixed order and returns
// the first failure as a customer-facing reason. Nothing here touches
// storage; the catalog comparison happens afterwards.
func validateSubmission(sub *domain.OrderSubmission) *domain.ValidationError {
	name := strings.TrimSpace(sub.CustomerName)
	if name == "" {
		return domain.NewValidationError("customer name is required")
	}
	if len(name) > 100 {
		return domain.NewValidationError("customer name must be at most 100 characters")
	}

	if email := strings.TrimSpace(sub.CustomerEmail); email != "" {
		if len(email) > 255 || !emailPattern.MatchString(email) {
			return domain.NewValidationError("invalid email address")
		}
	}

	if !mobilePattern.MatchString(strings.TrimSpace(sub.Mobile)) {
		return domain.NewValidationError("mobile number must be a valid 10-digit mobile number")
	}

	address := strings.TrimSpace(sub.Address)
	if address == "" {
		return domain.NewValidationError("delivery address is required")
	}
	if len(address) > 600 {
		return domain.NewValidationError("address must be at most 600 characters")
	}

	if len(strings.TrimSpace(sub.SpecialInstructions)) > 500 {
		return domain.NewValidationError("special instructions must be at most 500 characters")
	}

	if len(sub.Items) == 0 {
		return domain.NewValidationError("order must contain at least one item")
	}
	for i, item := range sub.Items {
		if err := validateItem(i, item); err != nil {
			return err
		}
	}

	if !finiteNonNegative(sub.Subtotal) {
		return domain.NewValidationError("subtotal must be a non-negative number")
	}
	if !finiteNonNegative(sub.GSTAmount) {
		return domain.NewValidationError("GST amount must be a non-negative number")
	}
	if !finiteNonNegative(sub.TotalAmount) {
		return domain.NewValidationError("total amount must be a non-negative number")
	}

	if sub.TotalItems < 0 {
		return domain.NewValidationError("total items must be a non-negative integer")
	}

	if sub.Status != "" && !domain.ValidStatus(sub.Status) {
		return domain.NewValidationError(fmt.Sprintf("invalid order status %q", sub.Status))
	}

	return nil
}

func validateItem(idx int, item domain.OrderItem) *domain.ValidationError {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return domain.NewValidationError(fmt.Sprintf("item %d: product id is required", idx+1))
	}
	if len(id) > 100 {
		return domain.NewValidationError(fmt.Sprintf("item %d: product id must be at most 100 characters", idx+1))
	}
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return domain.NewValidationError(fmt.Sprintf("item %d: product name is required", idx+1))
	}
	if len(name) > 200 {
		return domain.NewValidationError(fmt.Sprintf("item %d: product name must be at most 200 characters", idx+1))
	}
	if !finiteNonNegative(item.Price) {
		return domain.NewValidationError(fmt.Sprintf("item %d: price must be a non-negative number", idx+1))
	}
	if !finiteNonNegative(item.Quantity) {
		return domain.NewValidationError(fmt.Sprintf("item %d: quantity must be a non-negative number", idx+1))
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
