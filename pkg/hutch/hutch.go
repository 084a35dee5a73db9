// Package hutch holds module-level metadata.
package hutch

// Version is the released version of the hutch module.
const Version = "0.1.0"
