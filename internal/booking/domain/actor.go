package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ActorRole identifies who is acting on a booking.
type ActorRole string

const (
	// RoleCustomer is the customer who placed the booking.
	RoleCustomer ActorRole = "customer"
	// RoleProvider is the owner of the provider being booked.
	RoleProvider ActorRole = "provider"
	// RoleAdmin is a platform administrator.
	RoleAdmin ActorRole = "admin"
)

// Actor is the authenticated party performing a booking operation. Status
// transition guards dispatch on the role, so handlers must resolve the role
// before calling into the aggregate.
type Actor struct {
	role ActorRole
	id   uuid.UUID
}

// CustomerActor creates an actor acting as the booking's customer.
func CustomerActor(id uuid.UUID) Actor {
	return Actor{role: RoleCustomer, id: id}
}

// ProviderActor creates an actor acting as the booked provider's owner.
func ProviderActor(id uuid.UUID) Actor {
	return Actor{role: RoleProvider, id: id}
}

// AdminActor creates an actor acting as a platform administrator.
func AdminActor(id uuid.UUID) Actor {
	return Actor{role: RoleAdmin, id: id}
}

// Role returns the actor's role.
func (a Actor) Role() ActorRole { return a.role }

// ID returns the acting user's ID.
func (a Actor) ID() uuid.UUID { return a.id }

// IsCustomer reports whether the actor is the booking's customer.
func (a Actor) IsCustomer() bool { return a.role == RoleCustomer }

// IsProvider reports whether the actor is the provider's owner.
func (a Actor) IsProvider() bool { return a.role == RoleProvider }

// IsAdmin reports whether the actor is an administrator.
func (a Actor) IsAdmin() bool { return a.role == RoleAdmin }

func (a Actor) String() string {
	return fmt.Sprintf("%s %s", a.role, a.id)
}
