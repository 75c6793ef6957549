/*
Package app dispatches approved actions to the code that applies them.

A Router is a multisig.Executor. Each action target is a path in the
"<extension>/<action>" form, for example "token/mint", and is handled by
exactly one registered Handler.
*/
package app
