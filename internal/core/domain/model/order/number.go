package order

import (
	"fmt"
	"regexp"

	"freight/internal/pkg/errs"
)

// orderNumberPattern matches "ORD-{year}-{sequence}" with a four-digit year
// and a sequence of at least three digits.
var orderNumberPattern = regexp.MustCompile(`^ORD-(\d{4})-(\d{3,})$`)

// FormatOrderNumber renders an order number from a year and a per-year
// sequence value: "ORD-2024-007". The sequence is zero-padded to three digits
// and grows naturally past 999.
//
// Sequence values must come from an atomic per-year allocator; formatting a
// count of existing orders races with concurrent creations and produces
// duplicates.
func FormatOrderNumber(year int, sequence int) string {
	return fmt.Sprintf("ORD-%d-%03d", year, sequence)
}

// ValidateOrderNumber checks that a string is a well-formed order number.
func ValidateOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if !orderNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q does not match ORD-{year}-{sequence}", number))
	}
	return nil
}
