package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
)

// OrderParties carries the identities attached to one order: the customer
// who placed it, the driver who claimed it (if any), and the owner of the
// selling restaurant. It is the policy's complete view of an order; loading
// the restaurant owner eagerly is the caller's job.
type OrderParties struct {
	CustomerID kernel.UUID
	DriverID   *kernel.UUID
	OwnerID    kernel.UUID
}

// PartiesOf builds OrderParties from an order aggregate plus the owner of
// its restaurant.
func PartiesOf(o *order.Order, ownerID kernel.UUID) OrderParties {
	return OrderParties{
		CustomerID: o.CustomerID(),
		DriverID:   o.DriverID(),
		OwnerID:    ownerID,
	}
}

// AccessPolicy is the authorization matrix for orders. It is a total
// function over (role, relation to the order): every combination not
// explicitly allowed is denied.
//
// Access rule: an actor may access an order iff they are its customer
// (Client), its assigned driver (Delivery), or the owner of its restaurant
// (Owner).
//
// Transition rule (an allow-list, checked after access): a Client may
// never change status; an Owner may set Cooking or Cooked; a Delivery
// actor may set PickedUp or Delivered. Sequence adjacency is deliberately
// not enforced, so an Owner may set Cooked straight from Pending and
// same-status rewrites pass.
//
// Example:
//
//	policy := services.NewAccessPolicy()
//	if !policy.CanAccess(actor, parties) {
//	    // "You can not see that"
//	}
//	if !policy.CanTransition(actor, order.Cooked) {
//	    // "You can not edit that"
//	}
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanAccess reports whether the actor stands in the required relation to
// the order for its role. Any role outside the closed set is denied.
func (AccessPolicy) CanAccess(actor user.Actor, parties OrderParties) bool {
	switch actor.Role() {
	case user.Client:
		return actor.ID().IsEqual(parties.CustomerID)
	case user.Delivery:
		return parties.DriverID != nil && actor.ID().IsEqual(*parties.DriverID)
	case user.Owner:
		return actor.ID().IsEqual(parties.OwnerID)
	default:
		return false
	}
}

// CanTransition reports whether the actor's role may set the target
// status. Callers must check CanAccess first; this is the pure
// (role, status) allow-list with everything unlisted denied, including
// any status value outside the enum.
func (AccessPolicy) CanTransition(actor user.Actor, newStatus order.Status) bool {
	allowed, ok := allowedTransitions()[actor.Role()]
	if !ok {
		return false
	}

	_, ok = allowed[newStatus]
	return ok
}

func allowedTransitions() map[user.Role]map[order.Status]struct{} {
	return map[user.Role]map[order.Status]struct{}{
		user.Owner: {
			order.Cooking: {},
			order.Cooked:  {},
		},
		user.Delivery: {
			order.PickedUp:  {},
			order.Delivered: {},
		},
	}
}
