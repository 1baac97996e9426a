package ppi

type Segmenter interface {
	Segment(text string) []string
}

// Article is one PubMed record; it owns its sentences.
type Article struct {
	PMID      string
	Text      string
	Sentences []*Sentence
}

func NewArticle(pmid, text string) *Article {
	return &Article{PMID: pmid, Text: text}
}

// ExtractSentences fills Sentences from Text. Sentences already present are replaced.
func (a *Article) ExtractSentences(segmenter Segmenter) {
	texts := segmenter.Segment(a.Text)

	a.Sentences = make([]*Sentence, 0, len(texts))
	for i, text := range texts {
		a.Sentences = append(a.Sentences, &Sentence{
			ArticleID: a.PMID,
			Index:     i,
			Text:      text,
		})
	}
}

func (a *Article) Candidates() []*InteractionCandidate {
	var ret []*InteractionCandidate
	for _, sentence := range a.Sentences {
		ret = append(ret, sentence.Candidates...)
	}
	return ret
}
