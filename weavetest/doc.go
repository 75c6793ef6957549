/*
Package weavetest provides helpers for testing code built on top of the
coordinator: deterministic owner identities, executor fakes and error
assertions.
*/
package weavetest
