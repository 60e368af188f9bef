package normalize

import "testing"

func TestMatcher_FindSimilar(t *testing.T) {
	t.Parallel()

	teams := []string{"Flamengo", "Palmeiras", "São Paulo", "Santos"}
	m := NewMatcher(3, 0.34)

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "exact", in: "Flamengo", want: "Flamengo", wantOK: true},
		{name: "exact after normalization", in: "  sao paulo ", want: "São Paulo", wantOK: true},
		{name: "single typo", in: "Flamego", want: "Flamengo", wantOK: true},
		{name: "transposition", in: "Palmerias", want: "Palmeiras", wantOK: true},
		{name: "nothing close", in: "XYZ", wantOK: false},
		{name: "empty input", in: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := m.FindSimilar(tc.in, teams)
			if ok != tc.wantOK {
				t.Fatalf("FindSimilar(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("FindSimilar(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMatcher_FindSimilar_TieIsNoMatch(t *testing.T) {
	t.Parallel()

	// "Cruzeiro" sits at the same distance from both candidates, so the
	// matcher must refuse to pick one.
	m := NewMatcher(3, 1)
	if got, ok := m.FindSimilar("Cruzeira", []string{"Cruzeiro", "Cruzeiraa"}); ok {
		t.Fatalf("expected ambiguous tie to report no match, got %q", got)
	}
}

func TestMatcher_FindSimilar_RatioBound(t *testing.T) {
	t.Parallel()

	// Distance 2 against a five-letter name is a 0.4 ratio; a tight ratio
	// bound rejects it even though the absolute distance would pass.
	m := NewMatcher(3, 0.34)
	if got, ok := m.FindSimilar("Goa", []string{"Goiás"}); ok {
		t.Fatalf("expected ratio bound to reject, got %q", got)
	}

	loose := NewMatcher(3, 1)
	got, ok := loose.FindSimilar("Goa", []string{"Goiás"})
	if !ok || got != "Goiás" {
		t.Fatalf("expected loose ratio to accept Goiás, got %q ok=%v", got, ok)
	}
}

func TestMatcher_FindSimilar_DisabledDistance(t *testing.T) {
	t.Parallel()

	m := NewMatcher(0, 0.34)
	if _, ok := m.FindSimilar("Flamego", []string{"Flamengo"}); ok {
		t.Fatalf("expected fuzzy matching disabled with zero distance")
	}
	if got, ok := m.FindSimilar("flamengo", []string{"Flamengo"}); !ok || got != "Flamengo" {
		t.Fatalf("exact matches must still resolve, got %q ok=%v", got, ok)
	}
}

func TestMatchParticipant(t *testing.T) {
	t.Parallel()

	known := []string{"MarioSilva", "JoaodaSilvaJr", "AnaPaula"}

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "exact flattened", in: "Mario Silva", want: "MarioSilva", wantOK: true},
		{name: "case and separators", in: "mario-silva", want: "MarioSilva", wantOK: true},
		{name: "containment", in: "Ana", want: "AnaPaula", wantOK: true},
		{name: "word overlap", in: "Joao Silva", want: "JoaodaSilvaJr", wantOK: true},
		{name: "unknown", in: "Carlos", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := MatchParticipant(tc.in, known)
			if ok != tc.wantOK {
				t.Fatalf("MatchParticipant(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("MatchParticipant(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
