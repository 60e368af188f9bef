package normalize

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const participantWordScore = 0.7

// Matcher finds the closest known name under edit-distance similarity.
// A candidate is accepted only when its distance stays within both the
// absolute and the length-normalized bound; anything looser reports no
// match so the caller can ask the administrator instead of guessing.
type Matcher struct {
	maxDistance int
	maxRatio    float64
}

func NewMatcher(maxDistance int, maxRatio float64) *Matcher {
	if maxDistance < 0 {
		maxDistance = 0
	}
	if maxRatio <= 0 || maxRatio > 1 {
		maxRatio = 1
	}
	return &Matcher{maxDistance: maxDistance, maxRatio: maxRatio}
}

// FindSimilar resolves name against known team names. An exact match on
// the normalized form wins immediately; otherwise the single candidate
// with the smallest accepted edit distance is returned. Two candidates
// tied at the best distance count as ambiguous and resolve to no match.
func (m *Matcher) FindSimilar(name string, known []string) (string, bool) {
	target := Team(name)
	if target == "" || len(known) == 0 {
		return "", false
	}

	best := ""
	bestDist := -1
	tied := false
	for _, candidate := range known {
		normalized := Team(candidate)
		if normalized == target {
			return candidate, true
		}
		if m.maxDistance == 0 {
			continue
		}

		dist := levenshtein.ComputeDistance(target, normalized)
		if dist > m.maxDistance {
			continue
		}
		longest := len(target)
		if len(normalized) > longest {
			longest = len(normalized)
		}
		if longest == 0 || float64(dist)/float64(longest) > m.maxRatio {
			continue
		}

		switch {
		case bestDist == -1 || dist < bestDist:
			best = candidate
			bestDist = dist
			tied = false
		case dist == bestDist:
			tied = true
		}
	}

	if bestDist == -1 || tied {
		return "", false
	}
	return best, true
}

// MatchParticipant resolves a bettor name against registered participant
// names: exact flattened match, then containment either way, then a word
// overlap of at least 70% of the bettor's significant words.
func MatchParticipant(name string, known []string) (string, bool) {
	key := flatKey(name)
	if key == "" || len(known) == 0 {
		return "", false
	}

	for _, candidate := range known {
		if flatKey(candidate) == key {
			return candidate, true
		}
	}

	for _, candidate := range known {
		candidateKey := flatKey(candidate)
		if candidateKey == "" {
			continue
		}
		if strings.Contains(candidateKey, key) || strings.Contains(key, candidateKey) {
			return candidate, true
		}
	}

	words := participantWords(name)
	if len(words) == 0 {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, candidate := range known {
		candidateNorm := Team(candidate)
		found := 0
		for _, word := range words {
			if strings.Contains(candidateNorm, word) {
				found++
			}
		}
		score := float64(found) / float64(len(words))
		if score > bestScore && score >= participantWordScore {
			bestScore = score
			best = candidate
		}
	}

	if best == "" {
		return "", false
	}
	return best, true
}

// participantWords splits a name into its significant normalized words,
// ignoring anything of two characters or fewer once split.
func participantWords(name string) []string {
	lowered := strings.ToLower(name)
	lowered = strings.ReplaceAll(lowered, "-", " ")
	lowered = strings.ReplaceAll(lowered, "_", " ")

	var words []string
	for _, part := range strings.Fields(lowered) {
		if len([]rune(part)) <= 2 {
			continue
		}
		if w := Team(part); w != "" {
			words = append(words, w)
		}
	}
	return words
}
