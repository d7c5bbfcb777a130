package domain

import "errors"

var (
	// ErrInvalidProvider is returned when a provider fails validation.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrProviderNotFound is returned when no provider exists for an ID.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidSchedule is returned when working hours fail validation.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidOffering is returned when an offering fails validation.
	ErrInvalidOffering = errors.New("invalid offering")

	// ErrOfferingNotFound is returned when an offering does not belong to the provider.
	ErrOfferingNotFound = errors.New("offering not found")

	// ErrProviderNotReady is returned when a provider without an active
	// offering or any open day is approved.
	ErrProviderNotReady = errors.New("provider is not ready for approval")

	// ErrProviderNotPending is returned when a decided provider is approved or rejected again.
	ErrProviderNotPending = errors.New("provider application already decided")
)
