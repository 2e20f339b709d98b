// Package order provides domain entities and business logic for the grocery
// order lifecycle. It implements the Order aggregate root, the status state
// machine and the role-based transition contract.
//
// The package includes:
//   - Order: The aggregate root owning status, history and party references
//   - Status: A state machine with a single authoritative transition table
//   - Role and Actor: Who may trigger which transition
//   - HistoryEntry: One record of the append-only audit log
//   - StatusChangedEvent: The lifecycle event emitted on every transition
//
// Key business rules:
//   - The happy path is pending -> confirmed -> preparing -> ready ->
//     assigned -> picked_up -> on_the_way -> delivered
//   - Cancellation is legal only while pending or confirmed
//   - A courier claim is exclusive; rejection returns the order to ready
//   - delivered, cancelled and refunded are terminal; only an admin may
//     take delivered or cancelled orders to refunded (payment reversal)
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
