// Package discovery enumerates candidate serial devices on the local
// host by globbing the device-node naming conventions each platform
// uses, without opening or validating any of them.
package discovery

// Info describes one candidate device node found on the host.
type Info struct {
	// Path is the device node, e.g. "/dev/ttyUSB0".
	Path string
	// Description is a human-readable label suitable for display in a
	// picker; it carries no guarantee about the device's identity.
	Description string
}
