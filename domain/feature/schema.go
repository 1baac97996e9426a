package feature

import "fmt"

// SchemaVersion names the flat layout below. A trained classifier is only valid for the version it was trained on.
const SchemaVersion = "ppi-features/v1"

/*
Layout of ppi-features/v1, in index order. "between" is the token range [prot1.End, prot2.Start).

	positional  2   tokens between, tokens in sentence
	verbs       12  (sentence, between) counts for VB VBZ VBG VBD VBN MD+VB
	            +N  weight * occurrences between, per lexicon verb
	pos         C   counts between, per catalogue tag, last slot OTHER
	proteins    12  mentions (same as prot1, same as prot2, distinct) in left, between, right, total
	            2   mentions of prot1's symbol in sentence, of prot2's symbol in sentence
	keywords    K   occurrences in sentence, per keyword category
*/
const (
	BlockPositional = "positional"
	BlockVerbs      = "verbs"
	BlockPOS        = "pos"
	BlockProteins   = "proteins"
	BlockKeywords   = "keywords"
)

type Block struct {
	Name   string   `json:"name"`
	Offset int      `json:"offset"`
	Width  int      `json:"width"`
	Labels []string `json:"labels"`
}

var verbTags = []string{"VB", "VBZ", "VBG", "VBD", "VBN", "MD+VB"}

type weightedVerb struct {
	stem   string
	weight float64
}

var verbLexicon = []weightedVerb{
	{"interact", 5},
	{"bind", 4},
	{"activat", 4},
	{"phosphorylat", 5},
	{"acetylat", 5},
	{"methylat", 5},
	{"ubiquitin", 5},
	{"inhibit", 4},
	{"regulat", 3},
	{"associat", 3},
	{"recruit", 3},
	{"stimulat", 3},
	{"suppress", 3},
	{"induc", 2},
	{"mediat", 2},
}

var posCatalogue = []string{
	"CC", "CD", "DT", "EX", "FW", "IN", "JJ", "JJR", "JJS", "LS", "MD",
	"NN", "NNS", "NNP", "NNPS", "PDT", "POS", "PRP", "PRP$",
	"RB", "RBR", "RBS", "RP", "SYM", "TO", "UH",
	"VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "WDT", "WP", "WP$", "WRB",
	".", ",", ":", "-LRB-", "-RRB-", "``", "''", "$", "#",
}

const posOther = "OTHER"

var posIndex = func() map[string]int {
	ret := make(map[string]int, len(posCatalogue))
	for i, tag := range posCatalogue {
		ret[tag] = i
	}
	return ret
}()

var (
	proteinRegions = []string{"left", "between", "right", "total"}
	proteinKinds   = []string{"prot1", "prot2", "distinct"}
)

var schema = buildSchema()

func buildSchema() []Block {
	positional := []string{"between.tokens", "sentence.tokens"}

	var verbs []string
	for _, tag := range verbTags {
		verbs = append(verbs, tag+".sentence", tag+".between")
	}
	for _, verb := range verbLexicon {
		verbs = append(verbs, "lexicon."+verb.stem)
	}

	pos := make([]string, 0, len(posCatalogue)+1)
	pos = append(pos, posCatalogue...)
	pos = append(pos, posOther)

	var proteins []string
	for _, region := range proteinRegions {
		for _, kind := range proteinKinds {
			proteins = append(proteins, fmt.Sprintf("%s.%s", region, kind))
		}
	}
	proteins = append(proteins, "repeat.prot1", "repeat.prot2")

	var keywords []string
	for _, category := range keywordCategories {
		keywords = append(keywords, category.name)
	}

	blocks := []Block{
		{Name: BlockPositional, Labels: positional},
		{Name: BlockVerbs, Labels: verbs},
		{Name: BlockPOS, Labels: pos},
		{Name: BlockProteins, Labels: proteins},
		{Name: BlockKeywords, Labels: keywords},
	}

	offset := 0
	for i := range blocks {
		blocks[i].Offset = offset
		blocks[i].Width = len(blocks[i].Labels)
		offset += blocks[i].Width
	}

	return blocks
}

// Schema returns a copy of the block layout of SchemaVersion.
func Schema() []Block {
	ret := make([]Block, len(schema))
	for i, block := range schema {
		ret[i] = block
		ret[i].Labels = append([]string(nil), block.Labels...)
	}
	return ret
}

// Width is the length of a flattened vector.
func Width() int {
	last := schema[len(schema)-1]
	return last.Offset + last.Width
}

// Index returns the flat index of a slot, e.g. Index(BlockKeywords, "acetylate").
func Index(block, label string) (int, error) {
	for _, b := range schema {
		if b.Name != block {
			continue
		}
		for i, l := range b.Labels {
			if l == label {
				return b.Offset + i, nil
			}
		}
		return 0, fmt.Errorf("no slot [%s] in block [%s]", label, block)
	}
	return 0, fmt.Errorf("no block [%s]", block)
}
