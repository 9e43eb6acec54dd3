// Package order provides domain entities and business logic for shipment
// order management in the freight platform. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root owning the cost snapshot and the stage sequence
//   - Status: A state machine that enforces valid order status transitions
//   - Stage: A per-order workflow step, some of which require explicit client confirmation
//   - Cost: The price snapshot locked in at creation time
//
// Key business rules:
//   - Order status follows a defined workflow:
//     pending -> confirmed -> in_transit -> delivered, with cancellation
//     possible from any non-terminal status
//   - Stages advance strictly in sequence; a status transition happens only
//     when the stage gating it is completed
//   - A stage flagged as requiring client confirmation can only be completed
//     by an explicit client action, never by the agent alone
//   - The cost snapshot is immutable after creation; later rate or margin
//     changes never reprice an existing order
//   - A failed operation leaves the aggregate unchanged
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
