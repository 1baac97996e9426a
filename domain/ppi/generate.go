package ppi

import (
	"sort"

	"ppaxe-backend-controller/utils"
)

/*
GenerateCandidates pairs every mention with the nearest following mention of a different protein.
A mention left out by that pass (all later mentions are the same protein) is paired with the nearest
preceding different protein, so every mention with any different neighbour takes part in a candidate.

With k mentions and no equal neighbours this gives exactly k-1 candidates.
*/
func (s *Sentence) GenerateCandidates() error {
	if !s.annotated {
		return utils.WrapErrorf(ErrNotAnnotated, "sentence [%d] of article [%s]", s.Index, s.ArticleID)
	}

	s.Candidates = generate(s)
	return nil
}

type mentionPair struct {
	first, second int
}

func generate(s *Sentence) []*InteractionCandidate {
	mentions := s.Mentions
	paired := make([]bool, len(mentions))

	var pairs []mentionPair

	for i := 0; i < len(mentions); i++ {
		for j := i + 1; j < len(mentions); j++ {
			if mentions[i].SameProtein(mentions[j]) {
				continue
			}
			pairs = append(pairs, mentionPair{i, j})
			paired[i] = true
			paired[j] = true
			break
		}
	}

	for i := 0; i < len(mentions); i++ {
		if paired[i] {
			continue
		}
		for h := i - 1; h >= 0; h-- {
			if mentions[h].SameProtein(mentions[i]) {
				continue
			}
			pairs = append(pairs, mentionPair{h, i})
			paired[i] = true
			break
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		if pairs[a].first != pairs[b].first {
			return pairs[a].first < pairs[b].first
		}
		return pairs[a].second < pairs[b].second
	})

	ret := make([]*InteractionCandidate, 0, len(pairs))
	for _, pair := range pairs {
		candidate, err := NewInteractionCandidate(s, mentions[pair.first], mentions[pair.second])
		if err != nil {
			panic(err)
		}
		ret = append(ret, candidate)
	}

	return ret
}
