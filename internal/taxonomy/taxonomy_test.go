package taxonomy

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	kws := Resolve("Sci-Fi & Fantasy")
	if len(kws) == 0 {
		t.Fatal("Resolve() returned no keywords for a known category")
	}
	found := false
	for _, kw := range kws {
		if kw == "fantasy" {
			found = true
		}
		if kw != strings.ToLower(kw) {
			t.Errorf("keyword %q is not lowercase", kw)
		}
	}
	if !found {
		t.Errorf("Sci-Fi & Fantasy keywords = %v, want to include fantasy", kws)
	}
}

func TestResolve_Unknown(t *testing.T) {
	if kws := Resolve("Telenovelas"); kws != nil {
		t.Errorf("Resolve() on unknown label = %v, want nil", kws)
	}
	if kws := Resolve(""); kws != nil {
		t.Errorf("Resolve() on empty label = %v, want nil", kws)
	}
}

func TestResolve_ReturnsCopy(t *testing.T) {
	first := Resolve("Drama")
	first[0] = "mutated"
	second := Resolve("Drama")
	if second[0] == "mutated" {
		t.Error("Resolve() exposes internal state")
	}
}

func TestCategories(t *testing.T) {
	labels := Categories()
	if len(labels) == 0 {
		t.Fatal("Categories() is empty")
	}

	// Every listed label resolves.
	for _, label := range labels {
		if Resolve(label) == nil {
			t.Errorf("category %q does not resolve", label)
		}
	}

	// Deterministic order.
	again := Categories()
	for i := range labels {
		if labels[i] != again[i] {
			t.Fatalf("Categories() order is not stable at index %d", i)
		}
	}
}
