// Package blocks ships the stock object types a box needs before any
// application types are registered: a nestable container, a value that
// persists its own bytes, an uptime counter, and a device identity
// block. Register wires all of them into a registry under their fixed
// type tags.
package blocks
