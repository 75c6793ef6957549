/*
Package quorum defines the common types shared by the approval coordinator,
its stores and the gated extensions: owner addresses, key value store
interfaces and the helpers used to pass a logger through a context.Context.

The coordinator itself lives in x/multisig. A coordinator instance is built
once with its owner registry and threshold and handed to every caller that
needs it; there is no package level state.
*/
package quorum
