// Package services provides domain services for the grocery order lifecycle.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - ProofService: Issues and verifies the delivery codes required to
//     complete the on_the_way -> delivered transition
//
// Domain services stay stateless; persistence of what they produce is the
// application layer's responsibility through ports.
package services
