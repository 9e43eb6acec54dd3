package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// ServiceType enumerates the transport services offered by the platform.
// It is shared by rate quotations, margin rules and orders: a rate is
// published for one service type, a margin rule applies per service type,
// and an order's stage template is selected by service type.
type ServiceType int

const (
	// ServiceTypeUnknown represents an invalid or undefined service type.
	// This value (0) helps catch uninitialized ServiceType values.
	ServiceTypeUnknown ServiceType = iota

	// ServiceTypeFreight is sea freight transportation.
	ServiceTypeFreight

	// ServiceTypeRailway is rail transportation.
	ServiceTypeRailway

	// ServiceTypeAuto is road transportation.
	ServiceTypeAuto

	// ServiceTypeContainerRental is rental of shipping containers.
	ServiceTypeContainerRental
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceTypeUnknown:         "unknown",
		ServiceTypeFreight:         "freight",
		ServiceTypeRailway:         "railway",
		ServiceTypeAuto:            "auto",
		ServiceTypeContainerRental: "container_rental",
	}
}

func getValidServiceTypeStrings() map[ServiceType]string {
	//nolint:exhaustive // ServiceTypeUnknown is intentionally excluded as it's invalid
	return map[ServiceType]string{
		ServiceTypeFreight:         "freight",
		ServiceTypeRailway:         "railway",
		ServiceTypeAuto:            "auto",
		ServiceTypeContainerRental: "container_rental",
	}
}

// ParseServiceType converts the wire form ("freight", "railway", "auto",
// "container_rental") to a ServiceType. Returns an error for unknown values.
func ParseServiceType(s string) (ServiceType, error) {
	for st, str := range getValidServiceTypeStrings() {
		if str == s {
			return st, nil
		}
	}
	return ServiceTypeUnknown, errs.NewValueIsInvalidErrorWithCause("serviceType",
		fmt.Errorf("%q is not a valid service type", s))
}

// Validate checks if the ServiceType value is valid.
// ServiceTypeUnknown (0) and any other values are invalid.
func (s ServiceType) Validate() error {
	if _, ok := getValidServiceTypeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("serviceType",
			fmt.Errorf("%d is not a valid service type", s))
	}
	return nil
}

// String returns the wire form of the service type, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}
