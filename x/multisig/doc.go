/*
Package multisig implements an M-of-N approval coordinator.

A fixed set of owners and a threshold are declared once with NewRegistry.
Any owner can submit a proposal: an opaque action made of a target and a
payload. Owners approve proposals one vote each. Once the number of
approvals reaches the threshold, any owner can execute the proposal, which
hands the action over to an Executor. A proposal is executed at most once.

If the executor fails, the proposal stays pending with all its approvals
and can be executed again later without collecting new votes.

Proposals are never deleted, cancelled or expired. Every mutating operation
is applied on a cache wrap of the store and written only when it succeeds,
so a failed call leaves no trace behind.
*/
package multisig
