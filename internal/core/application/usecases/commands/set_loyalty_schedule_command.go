package commands

import (
	"errors"

	"freight/internal/core/domain/model/loyalty"
	"freight/internal/pkg/guard"
)

var (
	ErrSetLoyaltyScheduleCommandIsNotConstructed = errors.New(
		"SetLoyaltyScheduleCommand must be created via NewSetLoyaltyScheduleCommand constructor",
	)
)

// SetLoyaltyScheduleCommand replaces the global loyalty tier schedule. The new
// schedule affects future pricing only; discounts already snapshotted on
// existing orders are untouched.
type SetLoyaltyScheduleCommand struct {
	schedule loyalty.Schedule

	guard guard.ConstructorGuard
}

// NewSetLoyaltyScheduleCommand creates a command to replace the tier schedule.
// An empty schedule is a valid target and turns all discounts off.
func NewSetLoyaltyScheduleCommand(schedule loyalty.Schedule) (SetLoyaltyScheduleCommand, error) {
	if err := schedule.Validate(); err != nil {
		return SetLoyaltyScheduleCommand{}, err
	}

	return SetLoyaltyScheduleCommand{
		schedule: schedule,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetLoyaltyScheduleCommand) Validate() error {
	return c.guard.Validate(ErrSetLoyaltyScheduleCommandIsNotConstructed)
}

// Schedule returns the schedule to install.
func (c SetLoyaltyScheduleCommand) Schedule() loyalty.Schedule {
	return c.schedule
}
