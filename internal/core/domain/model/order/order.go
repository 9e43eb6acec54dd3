package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a shipment order. It is the aggregate root that manages
// the order lifecycle from booking through transit to delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, order number and client identifier
//   - Owns its stage sequence and its cost snapshot exclusively
//   - The cost snapshot never changes after creation
//   - Stages advance strictly in sequence; a stage flagged for client
//     confirmation is completed only by the client's explicit action
//   - Status transitions follow the state machine in Status and happen only
//     when the gating stage completes
//   - Failed operations leave the aggregate unchanged
//   - Can only be created through NewOrder or RestoreOrder
//
// The version field supports optimistic concurrency control: the repository
// refuses an update whose version does not match the persisted one, which
// serializes concurrent stage transitions on the same order.
type Order struct {
	id           kernel.UUID
	orderNumber  string
	clientID     kernel.UUID
	agentID      *kernel.UUID
	origin       string
	destination  string
	serviceType  kernel.ServiceType
	status       Status
	cost         Cost
	stages       []Stage
	documentIDs  []kernel.UUID
	version      int

	isConstructed bool
}

// NewOrder creates a new Order in StatusPending with its stage sequence
// seeded from the service type's template and the given cost snapshot.
//
// Parameters:
//   - id: unique identifier for the order
//   - orderNumber: pre-allocated "ORD-{year}-{sequence}" number
//   - clientID: the ordering client
//   - agentID: the serving agent, nil until one is assigned
//   - origin, destination: the shipment route
//   - serviceType: selects the stage template
//   - cost: the price snapshot produced by the pricing engine
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	clientID kernel.UUID,
	agentID *kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	cost Cost,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setClientID(clientID),
		o.setAgentID(agentID),
		o.setRoute(origin, destination),
		o.setServiceType(serviceType),
		o.setCost(cost),
	); err != nil {
		return nil, err
	}

	stages, err := StagesFor(serviceType)
	if err != nil {
		return nil, err
	}
	o.stages = stages

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status,
// stage states, document references and version. It applies the same field
// validation as NewOrder.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	clientID kernel.UUID,
	agentID *kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	status Status,
	cost Cost,
	stages []Stage,
	documentIDs []kernel.UUID,
	version int,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, clientID, agentID, origin, destination, serviceType, cost)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order")
	}

	o.status = status
	o.stages = stages
	o.documentIDs = documentIDs
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing "ORD-{year}-{sequence}" number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ClientID returns the ordering client's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// AgentID returns the serving agent's identifier, nil while unassigned.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// Origin returns the shipment's origin.
func (o *Order) Origin() string {
	return o.origin
}

// Destination returns the shipment's destination.
func (o *Order) Destination() string {
	return o.destination
}

// ServiceType returns the transport service of the shipment.
func (o *Order) ServiceType() kernel.ServiceType {
	return o.serviceType
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Cost returns the immutable price snapshot taken at creation.
func (o *Order) Cost() Cost {
	return o.cost
}

// Stages returns a copy of the order's stage sequence.
func (o *Order) Stages() []Stage {
	stages := make([]Stage, len(o.stages))
	copy(stages, o.stages)
	return stages
}

// DocumentIDs returns a copy of the attached document identifiers.
func (o *Order) DocumentIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(o.documentIDs))
	copy(ids, o.documentIDs)
	return ids
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// BumpVersion records that a new revision of the aggregate has been
// persisted. The repository calls it after a successful version-checked
// update, so the in-memory aggregate and anything derived from it, such as
// a published event snapshot, carry the stored row's version.
func (o *Order) BumpVersion() {
	o.version++
}

// AssignAgent assigns or reassigns the serving agent. Allowed while the
// order is not terminal.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithDetail(o.status.String(), o.status.String(),
			"cannot assign agent on a terminal order")
	}

	o.agentID = &agentID
	return nil
}

// AttachDocument records a reference to an uploaded document. The order only
// stores the identifier; the document itself lives in the document service.
func (o *Order) AttachDocument(documentID kernel.UUID) error {
	if err := documentID.Validate(); err != nil {
		return err
	}

	for _, id := range o.documentIDs {
		if id.IsEqual(documentID) {
			return nil
		}
	}
	o.documentIDs = append(o.documentIDs, documentID)
	return nil
}

// CurrentStage returns the first stage that is not yet completed, which is
// the only stage the workflow may act on, and false when every stage is done.
func (o *Order) CurrentStage() (Stage, bool) {
	for _, stage := range o.stages {
		if !stage.IsCompleted() {
			return stage, true
		}
	}
	return Stage{}, false
}

// AdvanceStage moves the named stage one step forward:
// StagePending -> StageInProgress, then StageInProgress -> StageCompleted,
// or -> StageRequiresConfirmation for stages flagged for client confirmation.
//
// The named stage must be the current stage - every earlier stage completed -
// otherwise the call fails with an invalid-transition error and the order is
// unchanged. Completing a stage that gates a status transition performs that
// transition atomically with the stage completion.
//
// A stage sitting in StageRequiresConfirmation cannot be advanced here at
// all: only ConfirmStage, carrying the client's identity, may complete it.
func (o *Order) AdvanceStage(stageName string) error {
	idx, err := o.actionableStage(stageName)
	if err != nil {
		return err
	}

	stage := &o.stages[idx]
	switch stage.status {
	case StagePending:
		stage.status = StageInProgress
		return nil

	case StageInProgress:
		if stage.requiresConfirmation {
			stage.status = StageRequiresConfirmation
			return nil
		}
		return o.completeStage(idx)

	case StageRequiresConfirmation:
		return errs.NewInvalidTransitionErrorWithDetail(
			stage.status.String(), StageCompleted.String(),
			fmt.Sprintf("stage %q requires client confirmation", stage.name))

	default:
		return errs.NewInvalidTransitionError(stage.status.String(), StageCompleted.String())
	}
}

// ConfirmStage completes a stage waiting in StageRequiresConfirmation on the
// client's explicit action. The confirming client must be the order's client;
// an agent cannot confirm on the client's behalf. Any status transition the
// stage gates is applied atomically with the completion.
func (o *Order) ConfirmStage(stageName string, clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	idx, err := o.actionableStage(stageName)
	if err != nil {
		return err
	}

	stage := &o.stages[idx]
	if stage.status != StageRequiresConfirmation {
		return errs.NewInvalidTransitionErrorWithDetail(
			stage.status.String(), StageCompleted.String(),
			fmt.Sprintf("stage %q is not awaiting confirmation", stage.name))
	}
	if !clientID.IsEqual(o.clientID) {
		return errs.NewInvalidTransitionErrorWithDetail(
			stage.status.String(), StageCompleted.String(),
			"confirmation must come from the order's client")
	}

	return o.completeStage(idx)
}

// Cancel moves the order to StatusCancelled from any non-terminal status.
// Cancelled orders keep their stage history; nothing is deleted.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// actionableStage locates the named stage and verifies it is the current one.
func (o *Order) actionableStage(stageName string) (int, error) {
	if o.status.IsTerminal() {
		return 0, errs.NewInvalidTransitionErrorWithDetail(o.status.String(), o.status.String(),
			"order is in a terminal status")
	}

	current, ok := o.CurrentStage()
	if !ok {
		return 0, errs.NewInvalidTransitionErrorWithDetail(o.status.String(), o.status.String(),
			"all stages are completed")
	}
	if !strings.EqualFold(current.name, stageName) {
		return 0, errs.NewInvalidTransitionErrorWithDetail(
			current.status.String(), StageCompleted.String(),
			fmt.Sprintf("stage %q is not the current stage, %q is", stageName, current.name))
	}

	for i := range o.stages {
		if strings.EqualFold(o.stages[i].name, stageName) {
			return i, nil
		}
	}

	// Unreachable: CurrentStage already matched the name.
	return 0, errs.NewObjectNotFoundError("stage", stageName)
}

// completeStage marks the stage completed and applies the status transition
// it gates, if any. The transition is validated before any mutation so a
// rejected transition leaves both stage and status untouched.
func (o *Order) completeStage(idx int) error {
	stage := &o.stages[idx]

	newStatus := o.status
	if stage.advancesTo != StatusUnknown {
		transitioned, err := o.status.TransitionTo(stage.advancesTo)
		if err != nil {
			return err
		}
		newStatus = transitioned
	}

	now := time.Now().UTC()
	stage.status = StageCompleted
	stage.completedAt = &now
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if err := ValidateOrderNumber(orderNumber); err != nil {
		return err
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setAgentID(agentID *kernel.UUID) error {
	if agentID == nil {
		return nil
	}
	if err := agentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentId", err)
	}
	o.agentID = agentID
	return nil
}

func (o *Order) setRoute(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	o.origin = origin
	o.destination = destination
	return nil
}

func (o *Order) setServiceType(serviceType kernel.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}
	o.serviceType = serviceType
	return nil
}

func (o *Order) setCost(cost Cost) error {
	if err := cost.Validate(); err != nil {
		return err
	}
	o.cost = cost
	return nil
}
