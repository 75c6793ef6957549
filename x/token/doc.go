/*
Package token implements the d42 token: a minimal ledger whose state can only
be changed by actions approved through the multisig coordinator.

The ledger has a fixed name, symbol and number of decimals, a total supply,
an optional supply cap and a pause switch. Amounts are integers of base
units, transported as decimal strings. FormatUnits renders them using the
token decimals.

State changing operations are exposed only as router handlers, see
RegisterRoutes. Reads are available directly on the Controller.
*/
package token
