package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppaxe-backend-controller/domain/ppi"
)

// parseTokens reads "word_POS" or "word_POS_P" fields; the trailing P marks a protein token.
func parseTokens(annotated string) []ppi.Token {
	var ret []ppi.Token
	for _, field := range strings.Fields(annotated) {
		parts := strings.Split(field, "_")
		token := ppi.Token{Word: parts[0], POS: parts[1], NER: "O"}
		if len(parts) == 3 {
			token.NER = parts[2]
		}
		ret = append(ret, token)
	}
	return ret
}

func candidates(t *testing.T, annotated string) []*ppi.InteractionCandidate {
	s := &ppi.Sentence{ArticleID: "1234"}
	s.SetTokens(parseTokens(annotated))
	require.Nil(t, s.GenerateCandidates())
	return s.Candidates
}

func slot(t *testing.T, v []float64, block, label string) float64 {
	i, err := Index(block, label)
	require.Nil(t, err)
	return v[i]
}

func TestSchema(t *testing.T) {
	blocks := Schema()
	require.Equal(t, 5, len(blocks))

	names := []string{BlockPositional, BlockVerbs, BlockPOS, BlockProteins, BlockKeywords}
	offset := 0
	for i, block := range blocks {
		assert.Equal(t, names[i], block.Name)
		assert.Equal(t, offset, block.Offset)
		assert.Equal(t, len(block.Labels), block.Width)
		offset += block.Width
	}
	assert.Equal(t, offset, Width())

	assert.Equal(t, 2, blocks[0].Width)
	assert.Equal(t, 12+len(verbLexicon), blocks[1].Width)
	assert.Equal(t, len(posCatalogue)+1, blocks[2].Width)
	assert.Equal(t, posOther, blocks[2].Labels[blocks[2].Width-1])
	assert.Equal(t, 14, blocks[3].Width)
	assert.Equal(t, len(keywordCategories), blocks[4].Width)

	// copies must not leak into the frozen layout
	blocks[0].Labels[0] = "changed"
	assert.Equal(t, "between.tokens", Schema()[0].Labels[0])

	_, err := Index(BlockKeywords, "no-such-category")
	assert.NotNil(t, err)
	_, err = Index("no-such-block", "x")
	assert.NotNil(t, err)
}

func TestSchema_FrozenLayout(t *testing.T) {
	assert.Equal(t, "ppi-features/v1", SchemaVersion)
	assert.Equal(t, 115, Width())

	layout := []struct {
		name          string
		offset, width int
	}{
		{BlockPositional, 0, 2},
		{BlockVerbs, 2, 27},
		{BlockPOS, 29, 46},
		{BlockProteins, 75, 14},
		{BlockKeywords, 89, 26},
	}
	blocks := Schema()
	require.Equal(t, len(layout), len(blocks))
	for i, expect := range layout {
		assert.Equal(t, expect.name, blocks[i].Name)
		assert.Equal(t, expect.offset, blocks[i].Offset, expect.name)
		assert.Equal(t, expect.width, blocks[i].Width, expect.name)
	}

	indices := []struct {
		block, label string
		index        int
	}{
		{BlockPositional, "between.tokens", 0},
		{BlockPositional, "sentence.tokens", 1},
		{BlockVerbs, "VB.sentence", 2},
		{BlockVerbs, "VBZ.between", 5},
		{BlockVerbs, "MD+VB.between", 13},
		{BlockVerbs, "lexicon.interact", 14},
		{BlockVerbs, "lexicon.phosphorylat", 17},
		{BlockVerbs, "lexicon.mediat", 28},
		{BlockPOS, "CC", 29},
		{BlockPOS, "NN", 40},
		{BlockPOS, "VBZ", 60},
		{BlockPOS, "#", 73},
		{BlockPOS, "OTHER", 74},
		{BlockProteins, "left.prot1", 75},
		{BlockProteins, "between.distinct", 80},
		{BlockProteins, "total.distinct", 86},
		{BlockProteins, "repeat.prot1", 87},
		{BlockProteins, "repeat.prot2", 88},
		{BlockKeywords, "interact", 89},
		{BlockKeywords, "acetylate", 95},
		{BlockKeywords, "recognize", 114},
	}
	for _, expect := range indices {
		i, err := Index(expect.block, expect.label)
		require.Nil(t, err, expect.label)
		assert.Equal(t, expect.index, i, "%s/%s", expect.block, expect.label)
	}
}

func TestExtract_Positional(t *testing.T) {
	cs := candidates(t, "The_DT protein_NN MAPK_NN_P interacts_VBZ directly_RB with_IN cryoglobulin_NN_P which_WDT is_VBZ very_RB interesting_JJ ._.")
	require.Equal(t, 1, len(cs))

	v := Extract(cs[0])
	assert.Equal(t, []float64{3, 12}, v.Positional)
	assert.Equal(t, Width(), len(v.Flatten()))
}

func TestExtract_Verbs(t *testing.T) {
	cs := candidates(t, "The_DT protein_NN MAPK_NN_P is_VBZ interacting_VBG and_CC activating_VBG directly_RB with_IN cryoglobulin_NN_P which_WDT is_VBZ very_RB interesting_JJ ._.")
	require.Equal(t, 1, len(cs))

	v := Extract(cs[0]).Flatten()
	assert.Equal(t, 2.0, slot(t, v, BlockVerbs, "VBZ.sentence"))
	assert.Equal(t, 1.0, slot(t, v, BlockVerbs, "VBZ.between"))
	assert.Equal(t, 2.0, slot(t, v, BlockVerbs, "VBG.sentence"))
	assert.Equal(t, 2.0, slot(t, v, BlockVerbs, "VBG.between"))
	assert.Equal(t, 0.0, slot(t, v, BlockVerbs, "VBD.sentence"))
	assert.Equal(t, 5.0, slot(t, v, BlockVerbs, "lexicon.interact"))
	assert.Equal(t, 4.0, slot(t, v, BlockVerbs, "lexicon.activat"))
	assert.Equal(t, 0.0, slot(t, v, BlockVerbs, "lexicon.bind"))
}

func TestExtract_ModalBigram(t *testing.T) {
	cs := candidates(t, "It_PRP may_MD bind_VB A1_NN_P which_WDT may_MD activate_VB B2_NN_P")
	require.Equal(t, 1, len(cs))

	v := Extract(cs[0]).Flatten()
	assert.Equal(t, 2.0, slot(t, v, BlockVerbs, "MD+VB.sentence"))
	assert.Equal(t, 1.0, slot(t, v, BlockVerbs, "MD+VB.between"))
	assert.Equal(t, 2.0, slot(t, v, BlockVerbs, "VB.sentence"))
	assert.Equal(t, 1.0, slot(t, v, BlockVerbs, "VB.between"))
	assert.Equal(t, 0.0, slot(t, v, BlockVerbs, "lexicon.bind"))
	assert.Equal(t, 4.0, slot(t, v, BlockVerbs, "lexicon.activat"))
}

func TestExtract_POS(t *testing.T) {
	cs := candidates(t, "The_DT protein_NN MAPK14_NN_P seems_VBZ to_TO interact_VB with_IN MAPK12_NN_P ._.")
	require.Equal(t, 1, len(cs))

	v := Extract(cs[0]).Flatten()
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, "VBZ"))
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, "TO"))
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, "VB"))
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, "IN"))
	assert.Equal(t, 0.0, slot(t, v, BlockPOS, "NN"))
	assert.Equal(t, 0.0, slot(t, v, BlockPOS, "."))
	assert.Equal(t, 0.0, slot(t, v, BlockPOS, posOther))

	cs = candidates(t, "A1_NN_P foo_XYZ bar_NN B2_NN_P")
	v = Extract(cs[0]).Flatten()
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, posOther))
	assert.Equal(t, 1.0, slot(t, v, BlockPOS, "NN"))
}

func TestExtract_AdjacentMentions(t *testing.T) {
	s := &ppi.Sentence{}
	s.SetTokens(parseTokens("A1_NN_P B2_NN_P binds_VBZ"))
	s.Mentions = []ppi.ProteinMention{
		ppi.NewProteinMention(s.Tokens, 0, 1),
		ppi.NewProteinMention(s.Tokens, 1, 2),
	}
	c, err := ppi.NewInteractionCandidate(s, s.Mentions[0], s.Mentions[1])
	require.Nil(t, err)

	v := Extract(c)
	assert.Equal(t, 0.0, v.Positional[0])
	for _, x := range v.POS {
		assert.Equal(t, 0.0, x)
	}
	assert.Equal(t, 1.0, slot(t, v.Flatten(), BlockVerbs, "VBZ.sentence"))
	assert.Equal(t, 0.0, slot(t, v.Flatten(), BlockVerbs, "VBZ.between"))
}

func TestExtract_ProteinDensity(t *testing.T) {
	cs := candidates(t, "MAPK13_NN_P seems_VBZ to_TO be_VB directly_RB correlated_VBN with_IN MAPK12_NN_P ,_, "+
		"which_WDT would_MD mean_VB that_IN MAPK13_NN_P depends_VBZ on_IN the_DT expression_NN of_IN MAPK13_NN_P and_CC MAPK12_NN_P ._.")

	// mentions: MAPK13 MAPK12 MAPK13 MAPK13 MAPK12
	require.Equal(t, 4, len(cs))
	first := Extract(cs[0]).Flatten()
	assert.Equal(t, "MAPK13", cs[0].Prot1.Symbol)
	assert.Equal(t, "MAPK12", cs[0].Prot2.Symbol)
	assert.Equal(t, 3.0, slot(t, first, BlockProteins, "repeat.prot1"))
	assert.Equal(t, 2.0, slot(t, first, BlockProteins, "repeat.prot2"))
	assert.Equal(t, 0.0, slot(t, first, BlockProteins, "left.distinct"))
	assert.Equal(t, 0.0, slot(t, first, BlockProteins, "between.prot1"))
	assert.Equal(t, 2.0, slot(t, first, BlockProteins, "right.prot1"))
	assert.Equal(t, 1.0, slot(t, first, BlockProteins, "right.prot2"))
	assert.Equal(t, 2.0, slot(t, first, BlockProteins, "total.prot1"))
	assert.Equal(t, 1.0, slot(t, first, BlockProteins, "total.prot2"))
	assert.Equal(t, 0.0, slot(t, first, BlockProteins, "total.distinct"))

	last := cs[len(cs)-1]
	assert.Equal(t, "MAPK13", last.Prot1.Symbol)
	assert.Equal(t, "MAPK12", last.Prot2.Symbol)
	lastV := Extract(last).Flatten()
	assert.Equal(t, 1.0, slot(t, lastV, BlockProteins, "left.prot2"))
	assert.Equal(t, 2.0, slot(t, lastV, BlockProteins, "left.prot1"))
	assert.Equal(t, 0.0, slot(t, lastV, BlockProteins, "right.prot1"))
}

func TestExtract_Keywords(t *testing.T) {
	cs := candidates(t, "PROT12_NN_P interacts_VBZ interacts_VBZ and_CC acetylates_VBZ PROT1_NN_P ._.")
	require.Equal(t, 1, len(cs))

	v := Extract(cs[0]).Flatten()
	assert.Equal(t, 2.0, slot(t, v, BlockKeywords, "interact"))
	assert.Equal(t, 1.0, slot(t, v, BlockKeywords, "acetylate"))
	assert.Equal(t, 0.0, slot(t, v, BlockKeywords, "deacetylate"))
}

func TestExtract_Deterministic(t *testing.T) {
	annotated := "MAPK_NN_P seems_VBZ to_TO interact_VB with_IN chloroacetate_NN_P esterase_NN_P which_WDT binds_VBZ cryoglobulin_NN_P ._."
	cs := candidates(t, annotated)
	require.Equal(t, 2, len(cs))

	before := parseTokens(annotated)
	for _, c := range cs {
		first := Extract(c).Flatten()
		second := Extract(c).Flatten()
		assert.Equal(t, first, second)
		assert.Equal(t, before, c.Tokens())
	}

	Apply(cs[0])
	assert.Equal(t, Extract(cs[0]).Flatten(), cs[0].Features)
}

func TestKeywordCategory(t *testing.T) {
	category, ok := KeywordCategory("Phosphorylated")
	assert.True(t, ok)
	assert.Equal(t, "phosphorylate", category)

	category, ok = KeywordCategory("dephosphorylation")
	assert.True(t, ok)
	assert.Equal(t, "dephosphorylate", category)

	_, ok = KeywordCategory("seems")
	assert.False(t, ok)
	assert.True(t, IsInteractionKeyword("INTERACTS"))
}

func TestPOSSequence(t *testing.T) {
	cs := candidates(t, "The_DT protein_NN MAPK14_NN_P seems_VBZ to_TO interact_VB with_IN MAPK12_NN_P ._.")
	require.Equal(t, 1, len(cs))

	between, err := POSSequence(cs[0], RegionBetween)
	require.Nil(t, err)
	assert.Equal(t, "VBZ,TO,VB,IN", between)

	left, err := POSSequence(cs[0], RegionLeft)
	require.Nil(t, err)
	assert.Equal(t, "DT,NN", left)

	right, err := POSSequence(cs[0], RegionRight)
	require.Nil(t, err)
	assert.Equal(t, ".", right)

	all, err := POSSequence(cs[0], RegionAll)
	require.Nil(t, err)
	assert.Equal(t, "DT,NN,NN,VBZ,TO,VB,IN,NN,.", all)

	_, err = POSSequence(cs[0], Region("middle"))
	assert.NotNil(t, err)
}
