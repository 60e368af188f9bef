// Package normalize canonicalizes team, participant and championship
// names so that spelling variants of the same name compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes to NFD and drops combining marks, so that
// "São Paulo" and "Sao Paulo" fold to the same bytes.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Team canonicalizes a team name: accent-free lowercase with single
// hyphens as the only separator. Slashes, hyphens and whitespace runs
// are all treated as the same separator.
//
//	Team("Atlético/MG")  == "atletico-mg"
//	Team("  São Paulo ") == "sao-paulo"
func Team(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	name = strings.ToLower(foldAccents(name))
	name = strings.ReplaceAll(name, "/", "-")

	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// Participant canonicalizes a participant name for directory use:
// accent-free with everything but letters and digits removed, original
// case preserved ("João da Silva Jr." becomes "JoaodaSilvaJr").
func Participant(name string) string {
	name = foldAccents(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Championship canonicalizes a championship name for directory use:
// accent-free, case preserved, filesystem-hostile characters and
// whitespace collapsed to single hyphens ("Brasileirão 2025" becomes
// "Brasileirao-2025").
func Championship(name string) string {
	name = foldAccents(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r) || strings.ContainsRune(`/\:*?"<>|`, r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// flatKey strips separators without hyphenating, for loose participant
// comparison ("Mario Silva" and "mario-silva" share a key).
func flatKey(name string) string {
	name = strings.ToLower(foldAccents(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}
