package discovery

import "testing"

func TestEnumerateNeverReturnsLiteralPatterns(t *testing.T) {
	infos, err := Enumerate()
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for _, pattern := range globPatterns {
		for _, info := range infos {
			if info.Path == pattern {
				t.Fatalf("Enumerate returned unexpanded pattern %q", pattern)
			}
		}
	}
}

func TestEnumerateDeduplicatesPaths(t *testing.T) {
	infos, err := Enumerate()
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	seen := make(map[string]bool)
	for _, info := range infos {
		if seen[info.Path] {
			t.Fatalf("duplicate path in Enumerate result: %s", info.Path)
		}
		seen[info.Path] = true
	}
}
