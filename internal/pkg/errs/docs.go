// Package errs provides standardized error types for the freight platform.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Validation errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError
//   - Business outcomes: NoRateAvailableError, ConfigurationMissingError,
//     InvalidTransitionError, ConcurrencyConflictError, StoreUnavailableError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrNoRateAvailable)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Business outcomes are deliberately modeled as errors: a missing rate or a
// rejected lifecycle transition is an expected result that callers surface
// with a structured reason, while only store-level failures are treated as
// unrecoverable for the current request.
package errs
