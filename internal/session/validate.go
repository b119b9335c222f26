package session

import (
	"regexp"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

var zipPattern = regexp.MustCompile(`^[0-9]{4,10}$`)

// ValidateForCheckout is the pure pre-save check the UI calls before
// attempting to finalize a tab. It reports every invalid field instead of
// failing on the first, so invalidity is discovered before any network call.
func ValidateForCheckout(tab *entity.BillingTab) []apperror.FieldError {
	var issues []apperror.FieldError

	if tab.Customer.Name == "" {
		issues = append(issues, apperror.FieldError{
			Field:   "customer.name",
			Message: "Customer name is required",
		})
	}
	if len(tab.Items) == 0 {
		issues = append(issues, apperror.FieldError{
			Field:   "items",
			Message: "At least one line item is required",
		})
	}
	if tab.Customer.Zip != "" && !zipPattern.MatchString(tab.Customer.Zip) {
		issues = append(issues, apperror.FieldError{
			Field:   "customer.zip",
			Message: "Postal code must be 4-10 digits",
		})
	}
	if tab.OrderType == enum.OrderTypeDelivery && tab.Customer.Address == "" {
		issues = append(issues, apperror.FieldError{
			Field:   "customer.address",
			Message: "Delivery orders require an address",
		})
	}
	if !tab.PaymentMethod.IsValid() {
		issues = append(issues, apperror.FieldError{
			Field:   "payment_method",
			Message: "Unknown payment method",
		})
	}

	return issues
}
