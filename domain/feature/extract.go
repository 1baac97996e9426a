package feature

import (
	"strings"

	"ppaxe-backend-controller/domain/ppi"
)

// Vector keeps the blocks apart; Flatten gives the SchemaVersion ordering.
type Vector struct {
	Positional []float64
	Verbs      []float64
	POS        []float64
	Proteins   []float64
	Keywords   []float64
}

func (v *Vector) Flatten() []float64 {
	ret := make([]float64, 0, Width())
	ret = append(ret, v.Positional...)
	ret = append(ret, v.Verbs...)
	ret = append(ret, v.POS...)
	ret = append(ret, v.Proteins...)
	ret = append(ret, v.Keywords...)
	return ret
}

func (v *Vector) Block(name string) []float64 {
	switch name {
	case BlockPositional:
		return v.Positional
	case BlockVerbs:
		return v.Verbs
	case BlockPOS:
		return v.POS
	case BlockProteins:
		return v.Proteins
	case BlockKeywords:
		return v.Keywords
	}
	return nil
}

/*
Extract reads the candidate's sentence tokens and mention spans; it never writes to them.
*/
func Extract(c *ppi.InteractionCandidate) *Vector {
	tokens := c.Tokens()
	between := tokens[c.Prot1.End:c.Prot2.Start]

	return &Vector{
		Positional: []float64{float64(len(between)), float64(len(tokens))},
		Verbs:      verbBlock(c),
		POS:        posBlock(between),
		Proteins:   proteinBlock(c),
		Keywords:   keywordBlock(tokens),
	}
}

// Apply stores the flat vector on the candidate.
func Apply(c *ppi.InteractionCandidate) {
	c.Features = Extract(c).Flatten()
}

func verbBlock(c *ppi.InteractionCandidate) []float64 {
	tokens := c.Tokens()
	ret := make([]float64, 2*len(verbTags)+len(verbLexicon))

	inBetween := func(i int) bool {
		return i >= c.Prot1.End && i < c.Prot2.Start
	}

	for i, token := range tokens {
		for k, tag := range verbTags {
			if !verbTagAt(tokens, i, tag) {
				continue
			}
			ret[2*k]++
			last := i
			if tag == "MD+VB" {
				last = i + 1
			}
			if inBetween(i) && inBetween(last) {
				ret[2*k+1]++
			}
		}

		if !inBetween(i) || !token.IsVerb() {
			continue
		}
		lower := strings.ToLower(token.Word)
		for k, verb := range verbLexicon {
			if strings.HasPrefix(lower, verb.stem) {
				ret[2*len(verbTags)+k] += verb.weight
			}
		}
	}

	return ret
}

func verbTagAt(tokens []ppi.Token, i int, tag string) bool {
	if tag == "MD+VB" {
		return tokens[i].POS == "MD" && i+1 < len(tokens) && tokens[i+1].POS == "VB"
	}
	return tokens[i].POS == tag
}

func posBlock(between []ppi.Token) []float64 {
	ret := make([]float64, len(posCatalogue)+1)
	for _, token := range between {
		if i, ok := posIndex[token.POS]; ok {
			ret[i]++
		} else {
			ret[len(posCatalogue)]++
		}
	}
	return ret
}

func proteinBlock(c *ppi.InteractionCandidate) []float64 {
	kinds := len(proteinKinds)
	ret := make([]float64, len(proteinRegions)*kinds+2)
	total := 3 * kinds

	for _, m := range c.Sentence.Mentions {
		if m.Canonical == c.Prot1.Canonical {
			ret[4*kinds]++
		}
		if m.Canonical == c.Prot2.Canonical {
			ret[4*kinds+1]++
		}

		if m == c.Prot1 || m == c.Prot2 {
			continue
		}

		var region int
		switch {
		case m.End <= c.Prot1.Start:
			region = 0
		case m.Start >= c.Prot2.End:
			region = 2
		default:
			region = 1
		}

		kind := 2
		if m.SameProtein(c.Prot1) {
			kind = 0
		} else if m.SameProtein(c.Prot2) {
			kind = 1
		}

		ret[region*kinds+kind]++
		ret[total+kind]++
	}

	return ret
}

func keywordBlock(tokens []ppi.Token) []float64 {
	ret := make([]float64, len(keywordCategories))
	for _, token := range tokens {
		if token.IsProtein() {
			continue
		}
		if i := keywordIndex(token.Word); i >= 0 {
			ret[i]++
		}
	}
	return ret
}
