// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the freight system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: A domain service that turns agent rates, margin rules and
//     loyalty history into a final client price
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
