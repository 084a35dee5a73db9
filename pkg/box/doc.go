// Package box implements the object box runtime: the type registry,
// the persistence journal, boot rehydration, and the command layer
// that maps id-chain operations onto the object model. Every command
// reduces to: resolve the chain, gate the operation on capability
// flags, report a status code.
package box
