// Package plugin defines the ABI contract for out-of-tree codec
// plugins. The core does not load or call plugins itself; this
// package exists so that a plugin and a host can agree on types
// without either depending on the other's internals.
package plugin

// ABIVersion is the contract version this package implements. A host
// and plugin built against different ABIVersions must refuse to load
// each other.
const ABIVersion = 1

// Context is handed to a plugin at Initialize time. Log lets the
// plugin emit diagnostics through the host's logging sink instead of
// writing to stdout/stderr directly.
type Context struct {
	ABIVersion uint32
	Log        func(level string, format string, args ...any)
}

// Descriptor is the interface a plugin exposes to a host. Decode is
// called for each frame the host wants translated; a plugin that only
// observes traffic may treat it as a no-op and return input unchanged.
type Descriptor interface {
	Identifier() string
	Name() string
	Version() string

	Initialize(ctx Context) error
	Shutdown()

	Decode(input []byte, output []byte) (n int, err error)
}
