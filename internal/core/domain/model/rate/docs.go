// Package rate contains the RateQuote aggregate: a raw price quotation
// submitted by an agent for a route and service type.
//
// Quotations are immutable once published. An agent supersedes a quotation by
// submitting a new one; the previous quotation is deactivated, never mutated
// or deleted, preserving the full pricing history. Whether a quotation takes
// part in pricing at a given date is decided by IsEffectiveAt.
package rate
