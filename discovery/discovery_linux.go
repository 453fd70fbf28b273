//go:build linux

package discovery

import (
	"path/filepath"
	"sort"
)

var globPatterns = []string{
	"/dev/ttyS*",
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/ttyAMA*",
	"/dev/ttyPS*",
}

// Enumerate globs the conventional Linux tty device-node patterns and
// returns the matches, deduplicated and sorted by path. A pattern
// that expands to nothing, or to its own literal text (no matching
// nodes), contributes no entries.
func Enumerate() ([]Info, error) {
	seen := make(map[string]struct{})
	var infos []Info

	for _, pattern := range globPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, path := range matches {
			if path == pattern {
				continue
			}
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			infos = append(infos, Info{
				Path:        path,
				Description: "Serial device " + path,
			})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}
