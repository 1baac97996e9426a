package taskqueue

import (
	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

func toReceiveMention(m ppi.ProteinMention) ReceiveSchemaMention {
	return ReceiveSchemaMention{Start: m.Start, End: m.End}
}

func newReceiveSchema(send *SendSchema, article *ppi.Article) ReceiveSchema {
	ret := ReceiveSchema{
		RequestID:      send.RequestID,
		ArticleID:      send.ArticleID,
		TaskID:         utils.UintToPtr(send.TaskID),
		PMID:           send.PMID,
		FeatureVersion: feature.SchemaVersion,
		Sentences:      make([]ReceiveSchemaSentence, 0, len(article.Sentences)),
	}

	for _, sentence := range article.Sentences {
		item := ReceiveSchemaSentence{
			Position: sentence.Index,
			Text:     sentence.Text,
			Tokens:   sentence.Tokens,
		}
		for _, c := range sentence.Candidates {
			item.Candidates = append(item.Candidates, ReceiveSchemaCandidate{
				Prot1:    toReceiveMention(c.Prot1),
				Prot2:    toReceiveMention(c.Prot2),
				Features: c.Features,
				Score:    c.Score,
				Label:    c.Label,
			})
		}
		ret.Sentences = append(ret.Sentences, item)
	}

	return ret
}

type storedCandidate struct {
	prot1, prot2 ReceiveSchemaMention
	features     []float64
	score        *float64
	label        bool
}

/*
restoreSentence rebuilds an annotated sentence and its candidates; mentions are recomputed from
the tokens and must match the stored ranges.
*/
func restoreSentence(articleID string, position int, text string, tokens []ppi.Token, candidates []storedCandidate) (*ppi.Sentence, error) {
	sentence := &ppi.Sentence{
		ArticleID: articleID,
		Index:     position,
		Text:      text,
	}
	sentence.SetTokens(tokens)

	for _, stored := range candidates {
		if !validRange(stored.prot1, len(tokens)) || !validRange(stored.prot2, len(tokens)) {
			return nil, utils.WrapErrorf(ppi.ErrMalformedCandidate, "mention range out of %d tokens", len(tokens))
		}

		prot1 := ppi.NewProteinMention(tokens, stored.prot1.Start, stored.prot1.End)
		prot2 := ppi.NewProteinMention(tokens, stored.prot2.Start, stored.prot2.End)

		c, err := ppi.NewInteractionCandidate(sentence, prot1, prot2)
		if err != nil {
			return nil, utils.WrapErrorf(err, "restore candidate of sentence [%d] fail", position)
		}
		c.Features = stored.features
		c.Score = stored.score
		c.Label = stored.label

		sentence.Candidates = append(sentence.Candidates, c)
	}

	return sentence, nil
}

func validRange(m ReceiveSchemaMention, tokens int) bool {
	return m.Start >= 0 && m.Start < m.End && m.End <= tokens
}
