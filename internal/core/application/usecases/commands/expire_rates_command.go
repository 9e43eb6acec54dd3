package commands

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrExpireRatesCommandIsNotConstructed = errors.New(
		"ExpireRatesCommand must be created via NewExpireRatesCommand constructor",
	)
)

// ExpireRatesCommand requests deactivation of every active rate quote whose
// validity window ended before the given moment. Issued by the scheduled
// expiry job; there is no payload beyond the reference time.
type ExpireRatesCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewExpireRatesCommand creates a command to expire rate quotes stale at asOf.
func NewExpireRatesCommand(asOf time.Time) (ExpireRatesCommand, error) {
	if asOf.IsZero() {
		return ExpireRatesCommand{}, errs.NewValueIsRequiredError("asOf")
	}

	return ExpireRatesCommand{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireRatesCommand) Validate() error {
	return c.guard.Validate(ErrExpireRatesCommandIsNotConstructed)
}

// AsOf returns the reference time quotes are expired against.
func (c ExpireRatesCommand) AsOf() time.Time {
	return c.asOf
}
