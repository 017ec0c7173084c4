package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("item")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(got, "item-") {
		t.Errorf("expected prefix %q, got %q", "item-", got)
	}

	// Default NanoID is 21 chars plus "item-" prefix.
	if len(got) != len("item-")+21 {
		t.Errorf("unexpected length %d for %q", len(got), got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := Generate("tag")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate("user")
	if !strings.HasPrefix(got, "user-") {
		t.Errorf("expected prefix %q, got %q", "user-", got)
	}
}
