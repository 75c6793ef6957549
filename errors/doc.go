/*
Package errors implements the error kinds used across quorum.

Reuse the kinds declared in this package whenever possible and register a new
one with Register only when an extension needs a kind clients must be able to
tell apart, for example multisig.ErrDuplicateApproval.

Create errors at the point of failure with Wrap, Wrapf or Field so that a
stacktrace is attached once, at the innermost frame:

	return errors.Wrapf(errors.ErrNotFound, "proposal %d", id)

Test for a kind with the Is method of the registered instance:

	if multisig.ErrAlreadyExecuted.Is(err) { ... }

Formatting with %+v prints the stacktrace, %s only the message.
*/
package errors
