// Package object defines the capability-flagged object model at the heart
// of the hutch object box: objects, containers, values, id-chain
// addressing, and the depth-first walk. Application block types implement
// these interfaces; pkg/box drives them from the command layer.
package object
