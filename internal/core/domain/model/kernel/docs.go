// Package kernel provides core domain primitives shared across the freight
// domain model. It implements fundamental building blocks following
// Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison
//   - Money: A value object for monetary amounts with currency-safe arithmetic
//   - ServiceType: The enumeration of transport service types offered by the platform
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and thread-safe,
// making them suitable for concurrent use.
package kernel
