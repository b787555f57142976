package models

import "testing"

func TestLookupTechnology(t *testing.T) {
	for _, name := range []string{"React", "react", " REACT "} {
		tech, ok := LookupTechnology(name)
		if !ok {
			t.Fatalf("LookupTechnology(%q) not found", name)
		}
		if tech.Name != "React" {
			t.Fatalf("LookupTechnology(%q) = %q", name, tech.Name)
		}
	}

	if _, ok := LookupTechnology("COBOL"); ok {
		t.Fatal("unknown technology must not resolve")
	}
}

func TestTechnologyTableIsComplete(t *testing.T) {
	seen := make(map[string]bool, len(Technologies))
	for _, tech := range Technologies {
		if tech.Name == "" || tech.Color == "" || tech.Icon == "" || tech.Language == "" {
			t.Errorf("incomplete entry: %+v", tech)
		}
		if seen[tech.Name] {
			t.Errorf("duplicate entry: %s", tech.Name)
		}
		seen[tech.Name] = true
	}
}
