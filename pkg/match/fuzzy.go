package match

import (
	"regexp"
	"strings"
)

const (
	// similarityThreshold is the minimum edit-distance similarity for a
	// posting token to count as a near-match of a term.
	similarityThreshold = 0.75

	// minOverlapLen guards the substring-either-direction fallback against
	// trivial short-string collisions.
	minOverlapLen = 3

	// maxScanTokens bounds the token scan so scoring latency stays
	// predictable for very large descriptions.
	maxScanTokens = 2000
)

// IsPresent reports whether term occurs in haystack. The term must be
// normalized and the haystack lower-cased by the caller. Checks run
// cheapest-first and short-circuit: synonym substring, reverse synonym,
// multi-word containment, word-boundary match, raw substring, token
// edit-distance similarity, then substring-in-either-direction. The
// later layers favor recall over precision.
func IsPresent(term, haystack string) bool {
	if term == "" || haystack == "" {
		return false
	}

	if syn, ok := synonyms[term]; ok && strings.Contains(haystack, syn) {
		return true
	}
	for short, long := range synonyms {
		if term == long && strings.Contains(haystack, short) {
			return true
		}
	}

	// Multi-word terms match when every word appears somewhere,
	// regardless of order or proximity.
	if words := strings.Fields(term); len(words) > 1 {
		all := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	if matchesWordBoundary(term, haystack) {
		return true
	}

	// Raw containment catches compound words ("kubernetes-native").
	if strings.Contains(haystack, term) {
		return true
	}

	tokens := strings.Fields(haystack)
	if len(tokens) > maxScanTokens {
		tokens = tokens[:maxScanTokens]
	}

	for _, tok := range tokens {
		if len(tok) < minOverlapLen {
			continue
		}
		if similarity(term, tok) >= similarityThreshold {
			return true
		}
	}

	if len(term) >= minOverlapLen {
		for _, tok := range tokens {
			if len(tok) < minOverlapLen {
				continue
			}
			if strings.Contains(tok, term) || strings.Contains(term, tok) {
				return true
			}
		}
	}

	return false
}

func matchesWordBoundary(term, haystack string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(haystack)
}

// similarity is 1 minus the Levenshtein distance normalized by the
// longer string's length: 1.0 means identical, 0.0 means nothing shared.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with a single-row DP.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return prev[lb]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
