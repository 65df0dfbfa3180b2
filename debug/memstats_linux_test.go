//go:build linux

package debug

import "testing"

func TestResidentSet(t *testing.T) {
	rss, err := residentSet()
	if err != nil {
		t.Fatalf("resident set: %v", err)
	}
	if rss == 0 {
		t.Fatalf("resident set of a running process should be non-zero")
	}
}
