package tagger

import (
	"context"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

var wordPattern = regexp.MustCompile(`\p{N}+(?:[.,]\p{N}+)+|[\p{L}\p{N}]+(?:['/-][\p{L}\p{N}]+)*|\S`)

/*
Tagger is an offline annotator: it tokenizes with a regular expression, tags parts of speech
with a small lexicon plus suffix rules, and marks every token run found in its protein gazetteer.
*/
type Tagger struct {
	proteinIndex map[string]struct{}
	maxWords     int
}

func NewTagger(symbols ...string) *Tagger {
	ret := Tagger{}
	ret.reset()
	ret.AddProteins(symbols...)
	return &ret
}

func newTaggerFromDatabase(setting *TagSetting, ctx context.Context) (*Tagger, error) {
	ret := Tagger{}
	ret.reset()

	err := ret.applyDatabase(ctx, setting.GetMetadataDatabase())
	if err != nil {
		return nil, utils.WrapError(err, "apply protein index from database fail")
	}

	if setting.Logger != nil {
		setting.Logger.Infof("tagger loaded %d protein symbols", len(ret.proteinIndex))
	}

	return &ret, nil
}

func (t *Tagger) reset() {
	t.proteinIndex = make(map[string]struct{})
	t.maxWords = 0
}

func (t *Tagger) applyIndex(proteinIndex map[string]struct{}, maxWords int) {
	for key := range proteinIndex {
		t.proteinIndex[key] = struct{}{}
	}
	if maxWords > t.maxWords {
		t.maxWords = maxWords
	}
}

func (t *Tagger) applyDatabase(ctx context.Context, db *gorm.DB) error {
	builder := indexBuilder{
		ctx: ctx,
	}

	err := db.WithContext(ctx).Transaction(builder.Build)
	if err != nil {
		return utils.WrapError(err, "build index fail")
	}

	t.applyIndex(builder.proteinIndex, builder.maxWords)
	return nil
}

func (t *Tagger) AddProteins(symbols ...string) {
	for _, symbol := range symbols {
		key, words := indexKey(symbol)
		if words == 0 {
			continue
		}
		t.proteinIndex[key] = struct{}{}
		if words > t.maxWords {
			t.maxWords = words
		}
	}
}

func (t *Tagger) Size() int {
	return len(t.proteinIndex)
}

// indexKey tokenizes symbol the same way sentences are tokenized, so multi-word symbols match token runs.
func indexKey(symbol string) (string, int) {
	words := wordPattern.FindAllString(symbol, -1)
	return ppi.Canonicalize(strings.Join(words, " ")), len(words)
}

func (t *Tagger) Annotate(ctx context.Context, text string) ([]ppi.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := wordPattern.FindAllString(text, -1)
	tokens := make([]ppi.Token, len(words))
	for i, word := range words {
		tokens[i].Word = word
		tokens[i].NER = "O"
	}

	t.markProteins(tokens)
	tagPOS(tokens)

	return tokens, nil
}

// markProteins takes the longest gazetteer entry starting at each position.
func (t *Tagger) markProteins(tokens []ppi.Token) {
	for i := 0; i < len(tokens); {
		matched := 0
		for n := t.maxWords; n > 0; n-- {
			if i+n > len(tokens) {
				continue
			}
			if t.contains(tokens[i : i+n]) {
				matched = n
				break
			}
		}

		if matched == 0 {
			i++
			continue
		}

		for j := i; j < i+matched; j++ {
			tokens[j].NER = ppi.ProteinNER
		}
		i += matched
	}
}

func (t *Tagger) contains(tokens []ppi.Token) bool {
	words := make([]string, len(tokens))
	for i, token := range tokens {
		words[i] = token.Word
	}
	_, ok := t.proteinIndex[ppi.Canonicalize(strings.Join(words, " "))]
	return ok
}

func (t *Tagger) String() string {
	return "dictionary"
}
