package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected business outcomes. These are normal results of
// the domain rules, not defects: callers surface them with a structured reason
// instead of a generic failure.
var (
	ErrNoRateAvailable      = errors.New("no rate available")
	ErrConfigurationMissing = errors.New("configuration is missing")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// NoRateAvailableError indicates that no effective rate quotation covered the
// requested route, service type and date. It is a business outcome, never a
// defect, and must not be retried silently.
type NoRateAvailableError struct {
	Origin      string
	Destination string
	ServiceType string
	Cause       error
}

// NewNoRateAvailableError creates a NoRateAvailableError for the given route
// and service type.
func NewNoRateAvailableError(origin, destination, serviceType string) *NoRateAvailableError {
	return &NoRateAvailableError{Origin: origin, Destination: destination, ServiceType: serviceType}
}

// NewNoRateAvailableErrorWithCause creates a NoRateAvailableError wrapping an
// underlying failure, typically a store timeout that must not be papered over
// with stale data.
func NewNoRateAvailableErrorWithCause(origin, destination, serviceType string, cause error) *NoRateAvailableError {
	return &NoRateAvailableError{Origin: origin, Destination: destination, ServiceType: serviceType, Cause: cause}
}

func (e *NoRateAvailableError) Error() string {
	msg := fmt.Sprintf("%s: route is: %s -> %s, service type is: %s",
		ErrNoRateAvailable, sanitizeValue(e.Origin), sanitizeValue(e.Destination), e.ServiceType)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *NoRateAvailableError) Unwrap() error {
	return ErrNoRateAvailable
}

// ConfigurationMissingError indicates that mandatory configuration was not
// provisioned, e.g. an agent has no active margin rule for a service type.
// Recovered by provisioning the configuration, not by retrying.
type ConfigurationMissingError struct {
	ParamName string
	Detail    string
}

// NewConfigurationMissingError creates a ConfigurationMissingError naming the
// missing configuration item.
func NewConfigurationMissingError(paramName, detail string) *ConfigurationMissingError {
	return &ConfigurationMissingError{ParamName: paramName, Detail: detail}
}

func (e *ConfigurationMissingError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrConfigurationMissing, e.ParamName, sanitizeValue(e.Detail))
	}
	return fmt.Sprintf("%s: %s", ErrConfigurationMissing, e.ParamName)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return ErrConfigurationMissing
}

// InvalidTransitionError indicates that a requested state change violates the
// lifecycle preconditions. The aggregate is left untouched when it is returned.
type InvalidTransitionError struct {
	From   string
	To     string
	Detail string
}

// NewInvalidTransitionError creates an InvalidTransitionError for a rejected
// move between two states.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorWithDetail creates an InvalidTransitionError with an
// additional human-readable reason.
func NewInvalidTransitionErrorWithDetail(from, to, detail string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Detail: detail}
}

func (e *InvalidTransitionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, sanitizeValue(e.Detail))
	}
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrencyConflictError indicates that a counter allocation or an optimistic
// update lost a race with a concurrent request. Handlers retry a bounded number
// of times before surfacing it.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the named
// resource.
func NewConcurrencyConflictError(paramName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id}
}

// NewConcurrencyConflictErrorWithCause creates a ConcurrencyConflictError
// wrapping an underlying storage error.
func NewConcurrencyConflictErrorWithCause(paramName string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	msg := fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrencyConflict, e.ParamName, sanitizeValue(e.ID))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// StoreUnavailableError indicates that the record store could not serve the
// request. Fatal for the current request; retrying is the caller's concern.
type StoreUnavailableError struct {
	Cause error
}

// NewStoreUnavailableError creates a StoreUnavailableError wrapping the
// storage-level failure.
func NewStoreUnavailableError(cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Cause: cause}
}

func (e *StoreUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", ErrStoreUnavailable, e.Cause)
	}
	return ErrStoreUnavailable.Error()
}

func (e *StoreUnavailableError) Unwrap() error {
	return ErrStoreUnavailable
}
