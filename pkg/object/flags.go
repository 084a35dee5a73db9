package object

// Flags classifies an object in a single byte. Each refinement ORs its
// own bit onto the flags of the interface it extends, so one byte
// comparison answers "can I write to this", "must I log this", "may I
// free this" without any runtime type inspection.
type Flags uint8

const (
	// FlagObject is the base classification; no bits set.
	FlagObject Flags = 0

	// FlagWritable marks a value as stream-writable.
	FlagWritable Flags = 0x01

	// FlagHasState marks a value whose state can change without a
	// stream write (driven by Update).
	FlagHasState Flags = 0x02

	// FlagValue marks stream-readable value types.
	FlagValue Flags = 0x04

	// FlagContainer marks containers.
	FlagContainer Flags = 0x08

	// FlagOpenContainer marks a container that accepts Add/Remove.
	// The bit is reused from FlagWritable in the container context.
	FlagOpenContainer Flags = 0x01

	// FlagNotLogged marks a value excluded from normal logging sweeps.
	FlagNotLogged Flags = 0x10

	// FlagStaticAllocated marks objects that are never destroyed.
	FlagStaticAllocated Flags = 0x20
)

// Has reports whether every bit of sub is set in f.
func (f Flags) Has(sub Flags) bool {
	return f&sub == sub
}

// IsContainer reports whether o is a container. A nil object is not.
func IsContainer(o Object) bool {
	return o != nil && o.Flags().Has(FlagContainer)
}

// IsOpenContainer reports whether o is a container that can be mutated.
func IsOpenContainer(o Object) bool {
	return o != nil && o.Flags().Has(FlagContainer|FlagOpenContainer)
}

// IsValue reports whether o is stream-readable.
func IsValue(o Object) bool {
	return o != nil && o.Flags().Has(FlagValue)
}

// IsWritable reports whether o is stream-writable.
func IsWritable(o Object) bool {
	return o != nil && o.Flags().Has(FlagWritable)
}

// IsLoggedValue reports whether o is a value included in logging sweeps:
// the value bit set and the not-logged bit clear.
func IsLoggedValue(o Object) bool {
	return o != nil && o.Flags()&(FlagValue|FlagNotLogged) == FlagValue
}

// IsDynamicallyAllocated reports whether o may be destroyed when removed
// from its container.
func IsDynamicallyAllocated(o Object) bool {
	return o != nil && o.Flags()&FlagStaticAllocated == 0
}
