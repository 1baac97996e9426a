package ppi

import (
	"fmt"

	"ppaxe-backend-controller/utils"
)

/*
InteractionCandidate is an ordered pair of mentions of the same sentence.

	Features: nil until computed
	Score: nil until scored, in [0, 1]
	Label: whether Score passed the decision threshold
*/
type InteractionCandidate struct {
	Prot1    ProteinMention
	Prot2    ProteinMention
	Sentence *Sentence

	Features []float64
	Score    *float64
	Label    bool
}

/*
NewInteractionCandidate rejects pairs that are not two distinct proteins of sentence in reading order.
*/
func NewInteractionCandidate(sentence *Sentence, prot1, prot2 ProteinMention) (*InteractionCandidate, error) {
	if prot1.SameProtein(prot2) {
		return nil, utils.WrapErrorf(ErrMalformedCandidate, "self pair on [%s]", prot1.Canonical)
	}

	if prot1.End > prot2.Start {
		return nil, utils.WrapErrorf(ErrMalformedCandidate, "[%s](%d:%d) does not precede [%s](%d:%d)",
			prot1.Symbol, prot1.Start, prot1.End, prot2.Symbol, prot2.Start, prot2.End)
	}

	if !sentence.hasMention(prot1) || !sentence.hasMention(prot2) {
		return nil, utils.WrapErrorf(ErrMalformedCandidate, "[%s] or [%s] not drawn from sentence [%d]",
			prot1.Symbol, prot2.Symbol, sentence.Index)
	}

	return &InteractionCandidate{
		Prot1:    prot1,
		Prot2:    prot2,
		Sentence: sentence,
	}, nil
}

func (s *Sentence) hasMention(m ProteinMention) bool {
	for _, mention := range s.Mentions {
		if mention == m {
			return true
		}
	}
	return false
}

func (c *InteractionCandidate) Tokens() []Token {
	return c.Sentence.Tokens
}

func (c *InteractionCandidate) ArticleID() string {
	return c.Sentence.ArticleID
}

func (c *InteractionCandidate) Scored() bool {
	return c.Score != nil
}

func (c *InteractionCandidate) String() string {
	return fmt.Sprintf("[%s] may interact with [%s]", c.Prot1.Symbol, c.Prot2.Symbol)
}
