package ppi

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTokens reads "word_POS" or "word_POS_P" fields; the trailing P marks a protein token.
func parseTokens(annotated string) []Token {
	var ret []Token
	for _, field := range strings.Fields(annotated) {
		parts := strings.Split(field, "_")
		token := Token{Word: parts[0], POS: parts[1], NER: "O"}
		if len(parts) == 3 {
			token.NER = parts[2]
		}
		ret = append(ret, token)
	}
	return ret
}

func annotatedSentence(annotated string) *Sentence {
	s := &Sentence{ArticleID: "1234"}
	s.SetTokens(parseTokens(annotated))
	return s
}

type mapAnnotator struct {
	calls  int
	byText map[string]string
	err    error
}

func (a *mapAnnotator) Annotate(_ context.Context, text string) ([]Token, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return parseTokens(a.byText[text]), nil
}

type splitOnNewline struct{}

func (splitOnNewline) Segment(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "MAPK 4", Canonicalize("  mapk \t 4 "))
	assert.Equal(t, "MAPK4", Canonicalize("ＭＡＰＫ４"))
	assert.Equal(t, Canonicalize("Akt3"), Canonicalize("AKT3"))
	assert.Equal(t, "CHLOROACETATE ESTERASE", Canonicalize("chloroacetate esterase"))
}

func TestFindMentions(t *testing.T) {
	tokens := parseTokens("MAPK_NN_P seems_VBZ to_TO interact_VB with_IN chloroacetate_NN_P esterase_NN_P")
	mentions := FindMentions(tokens)

	require.Equal(t, 2, len(mentions))
	assert.Equal(t, ProteinMention{Start: 0, End: 1, Symbol: "MAPK", Canonical: "MAPK"}, mentions[0])
	assert.Equal(t, ProteinMention{Start: 5, End: 7, Symbol: "chloroacetate esterase", Canonical: "CHLOROACETATE ESTERASE"}, mentions[1])
	assert.Equal(t, 2, mentions[1].Len())

	assert.Empty(t, FindMentions(parseTokens("The_DT thing_NN is_VBZ good_JJ ._.")))
}

func TestSentence_CandidateString(t *testing.T) {
	s := annotatedSentence("However_RB ,_, MAPK_NN_P is_VBZ a_DT better_JJR target_NN for_IN chloroacetate_NN_P " +
		"esterase_NN_P which_WDT is_VBZ an_DT essential_JJ protein_NN for_IN cryoglobulin_NN_P ._.")

	require.Nil(t, s.GenerateCandidates())
	require.Equal(t, 2, len(s.Candidates))
	assert.Equal(t, "[MAPK] may interact with [chloroacetate esterase]", s.Candidates[0].String())
	assert.Equal(t, "[chloroacetate esterase] may interact with [cryoglobulin]", s.Candidates[1].String())
	assert.Same(t, s, s.Candidates[0].Sentence)
	assert.Equal(t, "1234", s.Candidates[0].ArticleID())
	assert.Nil(t, s.Candidates[0].Features)
	assert.False(t, s.Candidates[0].Scored())
}

func TestSentence_ToHTML(t *testing.T) {
	s := annotatedSentence("The_DT transcription_NN factor_NN of_IN THOC2_NN_P seems_VBZ to_TO be_VB interacting_VBG " +
		"with_IN the_DT nuclear_JJ_P receptor_NN_P protein_NN_P 2_CD_P ._.")

	assert.Equal(t,
		"The transcription factor of <prot> THOC2 </prot> seems to be interacting with the <prot> nuclear receptor protein 2 </prot> .",
		s.ToHTML())
}

func TestSentence_RenderHTMLWithVerbs(t *testing.T) {
	s := annotatedSentence("However_RB ,_, Mapk4_NN_P interacts_VBZ directly_RB with_IN MAPK_NN_P ._.")
	style := HTMLStyle{
		ProtOpen:  `<span class="prot">`,
		ProtClose: "</span>",
		Verb:      Token.IsVerb,
		VerbOpen:  `<span class="verb">`,
		VerbClose: "</span>",
	}

	assert.Equal(t,
		`However , <span class="prot"> Mapk4 </span> <span class="verb">interacts</span> directly with <span class="prot"> MAPK </span> .`,
		s.RenderHTML(style))
}

func TestSentence_RenderHTMLEscapes(t *testing.T) {
	s := annotatedSentence("IL-6_NN_P <_SYM 5_CD &_CC TNF_NN_P")
	assert.Equal(t, "<prot> IL-6 </prot> &lt; 5 &amp; <prot> TNF </prot>", s.ToHTML())
}

func TestGenerate_AdjacentCount(t *testing.T) {
	s := annotatedSentence("A1_NN_P binds_VBZ B1_NN_P and_CC C1_NN_P ,_, not_RB D1_NN_P")
	require.Nil(t, s.GenerateCandidates())

	// k mentions without equal neighbours give k-1 candidates
	require.Equal(t, len(s.Mentions)-1, len(s.Candidates))
	for i, c := range s.Candidates {
		assert.Equal(t, s.Mentions[i], c.Prot1)
		assert.Equal(t, s.Mentions[i+1], c.Prot2)
	}
}

func TestGenerate_SkipsSelfPairs(t *testing.T) {
	s := annotatedSentence("MAPK13_NN_P seems_VBZ correlated_VBN with_IN MAPK12_NN_P ,_, which_WDT would_MD mean_VB " +
		"that_IN MAPK13_NN_P depends_VBZ on_IN the_DT expression_NN of_IN MAPK13_NN_P and_CC MAPK12_NN_P ._.")
	require.Nil(t, s.GenerateCandidates())

	got := make([]string, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		assert.True(t, c.Prot1.End <= c.Prot2.Start)
		assert.NotEqual(t, c.Prot1.Canonical, c.Prot2.Canonical)
		got = append(got, c.String())
	}

	assert.Equal(t, []string{
		"[MAPK13] may interact with [MAPK12]",
		"[MAPK12] may interact with [MAPK13]",
		"[MAPK13] may interact with [MAPK12]",
		"[MAPK13] may interact with [MAPK12]",
	}, got)
	assert.Equal(t, 10, s.Candidates[2].Prot1.Start)
	assert.Equal(t, 16, s.Candidates[3].Prot1.Start)
}

func TestGenerate_TrailingRepeatsStillPaired(t *testing.T) {
	s := annotatedSentence("Akt3_NN_P ,_, CPP3_NN_P ,_, cpp3_NN_P and_CC CPP3_NN_P")
	require.Nil(t, s.GenerateCandidates())

	require.Equal(t, 3, len(s.Candidates))
	for i, c := range s.Candidates {
		assert.Equal(t, "AKT3", c.Prot1.Canonical)
		assert.Equal(t, s.Mentions[i+1], c.Prot2)
	}
}

func TestGenerate_SingleProteinOrNone(t *testing.T) {
	s := annotatedSentence("However_RB ,_, cryoglobulin_NN_P is_VBZ better_JJR ._.")
	require.Nil(t, s.GenerateCandidates())
	assert.Empty(t, s.Candidates)

	same := annotatedSentence("MAPK_NN_P and_CC mapk_NN_P")
	require.Nil(t, same.GenerateCandidates())
	assert.Empty(t, same.Candidates)
}

func TestGenerate_RequiresAnnotation(t *testing.T) {
	s := &Sentence{Text: "MAPK binds Akt3."}
	err := s.GenerateCandidates()
	assert.True(t, errors.Is(err, ErrNotAnnotated))
}

func TestNewInteractionCandidate_Malformed(t *testing.T) {
	s := annotatedSentence("MAPK_NN_P binds_VBZ mapk_NN_P and_CC Akt3_NN_P")
	other := annotatedSentence("CPP3_NN_P is_VBZ here_RB")

	_, err := NewInteractionCandidate(s, s.Mentions[0], s.Mentions[1])
	assert.True(t, errors.Is(err, ErrMalformedCandidate))

	_, err = NewInteractionCandidate(s, s.Mentions[2], s.Mentions[0])
	assert.True(t, errors.Is(err, ErrMalformedCandidate))

	_, err = NewInteractionCandidate(s, s.Mentions[0], other.Mentions[0])
	assert.True(t, errors.Is(err, ErrMalformedCandidate))

	c, err := NewInteractionCandidate(s, s.Mentions[0], s.Mentions[2])
	require.Nil(t, err)
	assert.Equal(t, "[MAPK] may interact with [Akt3]", c.String())
}

func TestArticle_AnnotateOnce(t *testing.T) {
	annotator := &mapAnnotator{byText: map[string]string{
		"MAPK seems to interact with MAPK4.": "MAPK_NN_P seems_VBZ to_TO interact_VB with_IN MAPK4_NN_P ._.",
		"Nothing here.":                      "Nothing_NN here_RB ._.",
	}}

	article := NewArticle("1234", "MAPK seems to interact with MAPK4.\nNothing here.")
	article.ExtractSentences(splitOnNewline{})
	require.Equal(t, 2, len(article.Sentences))
	assert.Equal(t, 1, article.Sentences[1].Index)
	assert.Equal(t, "1234", article.Sentences[1].ArticleID)

	for _, sentence := range article.Sentences {
		require.Nil(t, sentence.Annotate(context.TODO(), annotator))
		require.Nil(t, sentence.Annotate(context.TODO(), annotator))
		require.Nil(t, sentence.GenerateCandidates())
	}

	assert.Equal(t, 2, annotator.calls)
	require.Equal(t, 1, len(article.Candidates()))
	assert.Equal(t, "[MAPK] may interact with [MAPK4]", article.Candidates()[0].String())
}

func TestSentence_AnnotateFailure(t *testing.T) {
	annotator := &mapAnnotator{err: ErrServiceUnavailable}
	s := &Sentence{Text: "MAPK binds Akt3."}

	err := s.Annotate(context.TODO(), annotator)
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
	assert.False(t, s.Annotated())
}
