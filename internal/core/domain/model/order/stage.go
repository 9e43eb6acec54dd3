package order

import (
	"time"

	"freight/internal/pkg/errs"
)

// StageStatus represents the state of a single workflow stage within an order.
//
// State transitions:
//
//	StagePending ──> StageInProgress ──> StageCompleted
//	                        │                  ▲
//	                        └──> StageRequiresConfirmation
//	                              (client confirmation only)
//
// The detour through StageRequiresConfirmation is taken by stages flagged
// requiresClientConfirmation: the agent can bring the stage to the
// confirmation point, but only the client's explicit action completes it.
type StageStatus int

const (
	// StageUnknown represents an invalid or undefined stage status.
	StageUnknown StageStatus = iota

	// StagePending means work on the stage has not started.
	StagePending

	// StageInProgress means the agent is working the stage.
	StageInProgress

	// StageRequiresConfirmation means the work is done and the stage waits
	// for the client's explicit confirmation.
	StageRequiresConfirmation

	// StageCompleted means the stage is finished. Final for a stage.
	StageCompleted
)

func getStageStatusStrings() map[StageStatus]string {
	return map[StageStatus]string{
		StageUnknown:              "unknown",
		StagePending:              "pending",
		StageInProgress:           "in_progress",
		StageRequiresConfirmation: "requires_confirmation",
		StageCompleted:            "completed",
	}
}

// ParseStageStatus converts the wire form back into a StageStatus.
func ParseStageStatus(s string) (StageStatus, error) {
	for status, str := range getStageStatusStrings() {
		if status != StageUnknown && str == s {
			return status, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidError("stageStatus")
}

// Validate checks if the StageStatus value is valid.
func (s StageStatus) Validate() error {
	if s < StagePending || s > StageCompleted {
		return errs.NewValueIsInvalidError("stageStatus")
	}
	return nil
}

// String returns the wire form of the stage status. Implements fmt.Stringer.
func (s StageStatus) String() string {
	if str, ok := getStageStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Stage is one workflow step of an order. Stages are owned by their order,
// ordered by sequence, and advance strictly one after another. A stage may
// carry the order status its completion transitions the order to.
type Stage struct {
	name                 string
	sequence             int
	requiresConfirmation bool
	advancesTo           Status
	status               StageStatus
	completedAt          *time.Time
}

// RestoreStage reconstructs a Stage from persistence. advancesTo is
// StatusUnknown for stages that do not gate a status transition.
func RestoreStage(
	name string,
	sequence int,
	requiresConfirmation bool,
	advancesTo Status,
	status StageStatus,
	completedAt *time.Time,
) (Stage, error) {
	if name == "" {
		return Stage{}, errs.NewValueIsRequiredError("stageName")
	}
	if err := status.Validate(); err != nil {
		return Stage{}, err
	}

	return Stage{
		name:                 name,
		sequence:             sequence,
		requiresConfirmation: requiresConfirmation,
		advancesTo:           advancesTo,
		status:               status,
		completedAt:          completedAt,
	}, nil
}

// Name returns the stage's name, unique within its order.
func (s Stage) Name() string {
	return s.name
}

// Sequence returns the stage's position in the order's workflow, starting at 1.
func (s Stage) Sequence() int {
	return s.sequence
}

// RequiresClientConfirmation reports whether only the client's explicit
// action may complete the stage.
func (s Stage) RequiresClientConfirmation() bool {
	return s.requiresConfirmation
}

// AdvancesTo returns the order status the stage's completion transitions the
// order to, or StatusUnknown when it gates no transition.
func (s Stage) AdvancesTo() Status {
	return s.advancesTo
}

// Status returns the stage's current state.
func (s Stage) Status() StageStatus {
	return s.status
}

// CompletedAt returns when the stage was completed, nil while it is not.
func (s Stage) CompletedAt() *time.Time {
	return s.completedAt
}

// IsCompleted reports whether the stage reached StageCompleted.
func (s Stage) IsCompleted() bool {
	return s.status == StageCompleted
}
