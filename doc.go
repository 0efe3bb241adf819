// Package storefront provides the client-side engine of a retail storefront:
// session establishment from an opaque bearer token, advisory role
// derivation, navigation guards, a persisted shopping cart, and checkout
// orchestration against a REST backend.
//
// Session semantics:
//   - The bearer token is never verified locally. Claims are decoded
//     optimistically (ParseUnverified) to drive UI affordances only; the
//     backend re-checks authorization on every privileged request.
//   - Logout always clears the local token, even when the backend
//     notification fails. A dead backend must never leave the client
//     believing it is still authenticated.
//
// Cart invariants:
//   - At most one line per product; AddItem merges quantities rather than
//     duplicating lines. A quantity update to zero removes the line.
//   - ItemCount and Subtotal are recomputed from the lines on every read, so
//     totals cannot drift from the line quantities.
//
// Checkout:
//   - CheckoutOrchestrator is a small state machine (idle, submitting,
//     succeeded, failed). The order payload is snapshotted by value at
//     submit time, the cart is cleared only after the backend accepts the
//     order, and a failed submission leaves the cart intact for retry.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter describing login, logout,
//     cart, and checkout events. Sinks run best-effort (errors are logged)
//     so you can forward to a database or queue without blocking the UI.
package storefront
