package cell

// Capability states how far a cell's contained value may travel across
// goroutines. Live access is always confined to the owner regardless of
// capability; a capability only widens what is permitted at teardown and
// after the value has been taken out of the cell.
type Capability uint8

const (
	// Confined pins the value to the owning goroutine for its entire
	// lifetime, teardown included. This is the default.
	Confined Capability = iota

	// SendForDrop additionally permits one-shot teardown from any
	// goroutine. A cell being torn down is not being used in the
	// aliasing sense: no guard can be live at that point.
	SendForDrop

	// Sendable marks the value itself as safe to hand to another
	// goroutine once removed from the cell (via Replace or Drop).
	// Sendable implies the teardown rights of SendForDrop.
	Sendable
)

// String returns a short name for the capability.
func (c Capability) String() string {
	switch c {
	case Confined:
		return "confined"
	case SendForDrop:
		return "send-for-drop"
	case Sendable:
		return "sendable"
	default:
		return "unknown"
	}
}

// dropAnywhere reports whether teardown may run off the owner goroutine.
func (c Capability) dropAnywhere() bool { return c >= SendForDrop }
