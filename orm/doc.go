/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are protobuf messages that can validate themselves.
* Easy queries for one and ordered iteration.

Sequences generate dense, ordered keys for models that are identified by a
counter, such as proposals.
*/
package orm
