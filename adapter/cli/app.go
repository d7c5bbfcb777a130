package cli

import (
	bookingCommands "github.com/emreakdogan/randevu/internal/booking/application/commands"
	bookingQueries "github.com/emreakdogan/randevu/internal/booking/application/queries"
	providerCommands "github.com/emreakdogan/randevu/internal/provider/application/commands"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Provider Command Handlers
	RegisterProviderHandler *providerCommands.RegisterProviderHandler
	SetWorkingHoursHandler  *providerCommands.SetWorkingHoursHandler
	AddOfferingHandler      *providerCommands.AddOfferingHandler
	ApproveProviderHandler  *providerCommands.ApproveProviderHandler

	// Booking Command Handlers
	CommitBookingHandler       *bookingCommands.CommitBookingHandler
	UpdateBookingStatusHandler *bookingCommands.UpdateBookingStatusHandler
	CancelBookingHandler       *bookingCommands.CancelBookingHandler

	// Booking Query Handlers
	GetBookingHandler      *bookingQueries.GetBookingHandler
	ListBookingsHandler    *bookingQueries.ListBookingsHandler
	GetAvailabilityHandler *bookingQueries.GetAvailabilityHandler

	// Current actor (configured per environment)
	CurrentActorID uuid.UUID
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	registerProviderHandler *providerCommands.RegisterProviderHandler,
	setWorkingHoursHandler *providerCommands.SetWorkingHoursHandler,
	addOfferingHandler *providerCommands.AddOfferingHandler,
	approveProviderHandler *providerCommands.ApproveProviderHandler,
	commitBookingHandler *bookingCommands.CommitBookingHandler,
	updateBookingStatusHandler *bookingCommands.UpdateBookingStatusHandler,
	cancelBookingHandler *bookingCommands.CancelBookingHandler,
	getBookingHandler *bookingQueries.GetBookingHandler,
	listBookingsHandler *bookingQueries.ListBookingsHandler,
	getAvailabilityHandler *bookingQueries.GetAvailabilityHandler,
) *App {
	return &App{
		RegisterProviderHandler:    registerProviderHandler,
		SetWorkingHoursHandler:     setWorkingHoursHandler,
		AddOfferingHandler:         addOfferingHandler,
		ApproveProviderHandler:     approveProviderHandler,
		CommitBookingHandler:       commitBookingHandler,
		UpdateBookingStatusHandler: updateBookingStatusHandler,
		CancelBookingHandler:       cancelBookingHandler,
		GetBookingHandler:          getBookingHandler,
		ListBookingsHandler:        listBookingsHandler,
		GetAvailabilityHandler:     getAvailabilityHandler,
		CurrentActorID:             uuid.Nil,
	}
}

// SetCurrentActorID updates the current actor ID.
func (a *App) SetCurrentActorID(id uuid.UUID) {
	a.CurrentActorID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
