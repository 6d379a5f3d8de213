package cell

import "github.com/kolkov/threadcell/internal/cell/fault"

// Version information for the threadcell runtime checks.
const (
	// Version is the current version of the library.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the cell checks.
type Info struct {
	// Version is the library version string.
	Version string

	// Discipline names the checking discipline in force.
	Discipline string

	// HaltOnError indicates whether a violation exits the process
	// instead of panicking the offending goroutine.
	HaltOnError bool
}

// GetInfo returns information about the cell checking runtime.
//
// Example:
//
//	info := cell.GetInfo()
//	fmt.Printf("threadcell %s (%s)\n", info.Version, info.Discipline)
func GetInfo() Info {
	return Info{
		Version:     Version,
		Discipline:  "runtime borrow checking, goroutine-affine",
		HaltOnError: fault.HaltOnError(),
	}
}
