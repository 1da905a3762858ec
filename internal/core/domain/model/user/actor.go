package user

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not
// created through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated identity performing an operation: a user id
// plus its immutable role. Actor is a value object; the zero value is
// invalid and fails Validate.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates an Actor from a validated id and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{isConstructed: true}

	if err := errors.Join(
		actor.setID(id),
		actor.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate ensures the Actor was constructed via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's user id.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsEqual compares two actors by identity.
func (a Actor) IsEqual(other Actor) bool {
	return a.id.IsEqual(other.id)
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
