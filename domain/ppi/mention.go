package ppi

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

/*
ProteinMention is a maximal run of consecutive protein tokens of one sentence.

	Start, End: token range [Start, End) inside the sentence
	Symbol: the surface words joined by a single space, case preserved
	Canonical: identity key, see Canonicalize
*/
type ProteinMention struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Symbol    string `json:"symbol"`
	Canonical string `json:"canonical"`
}

// Canonicalize gives the form used for every identity comparison: NFKC, upper case, whitespace collapsed.
func Canonicalize(symbol string) string {
	normed := norm.NFKC.String(symbol)
	normed = strings.Join(strings.Fields(normed), " ")
	return cases.Upper(language.Und).String(normed)
}

func NewProteinMention(tokens []Token, start, end int) ProteinMention {
	words := make([]string, 0, end-start)
	for _, token := range tokens[start:end] {
		words = append(words, token.Word)
	}

	symbol := strings.Join(words, " ")
	return ProteinMention{
		Start:     start,
		End:       end,
		Symbol:    symbol,
		Canonical: Canonicalize(symbol),
	}
}

func (m ProteinMention) Len() int {
	return m.End - m.Start
}

func (m ProteinMention) SameProtein(other ProteinMention) bool {
	return m.Canonical == other.Canonical
}

// FindMentions merges consecutive protein tokens greedily, left to right.
func FindMentions(tokens []Token) []ProteinMention {
	var ret []ProteinMention

	start := -1
	for i, token := range tokens {
		if token.IsProtein() {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			ret = append(ret, NewProteinMention(tokens, start, i))
			start = -1
		}
	}

	if start >= 0 {
		ret = append(ret, NewProteinMention(tokens, start, len(tokens)))
	}

	return ret
}
