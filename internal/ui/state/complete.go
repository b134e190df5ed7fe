package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultVocabulary is the firmware's documented command set.
func DefaultVocabulary() []string {
	return []string{"HELP", "ADD 0x08-0x77", "ADD 0x50", "LIST", "CLEAR"}
}

// Complete picks the vocabulary entry that best matches input. Exact and
// prefix matches win over fuzzy ones; ties go to the earlier entry.
func Complete(vocabulary []string, input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || len(vocabulary) == 0 {
		return "", false
	}
	idx := bestMatchIndex(vocabulary, trimmed)
	if idx < 0 || vocabulary[idx] == input {
		return "", false
	}
	return vocabulary[idx], true
}

func bestMatchIndex(candidates []string, query string) int {
	for i, c := range candidates {
		if strings.EqualFold(c, query) {
			return i
		}
	}
	lower := strings.ToLower(query)
	for i, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			return i
		}
	}
	for i, c := range candidates {
		if strings.Contains(strings.ToLower(c), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(candidates) {
		return -1
	}
	return best.OriginalIndex
}
