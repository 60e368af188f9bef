package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_CodeShape(t *testing.T) {
	gen := NewRandomGenerator()

	champ, err := gen.NewChampionshipCode()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(champ) != 5 {
		t.Fatalf("championship code %q has length %d, want 5", champ, len(champ))
	}

	part, err := gen.NewParticipantCode()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(part) != 4 {
		t.Fatalf("participant code %q has length %d, want 4", part, len(part))
	}

	for _, code := range []string{champ, part} {
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}
