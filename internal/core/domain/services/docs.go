// Package services provides domain services that implement business rules
// spanning multiple domain entities in the marketplace system.
//
// The package includes:
//   - AccessPolicy: the role-and-ownership authorization matrix governing
//     who may read an order and which status transitions each role may drive
//
// Domain services hold pure policy, implementing logic that doesn't
// naturally belong to a single aggregate root following Domain-Driven
// Design principles.
package services
