package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planarianText = `
        To identify roles of Hh signaling in the planarian CNS maintenance, we examined gene expression changes using RNA sequencing of cephalic ganglia following RNAi of hh, ptc, or a control gene (C. elegans unc-22) not present in the planarian genome.
        We developed a dissection technique that allowed cephalic ganglia tissue to be collected from large (>2 cm) S2F1L3F2 sexual strain S. mediterranea animals following a brief acid-based fixation (Figure 1C).
        To test for enrichment using this dissection technique, amputated head fragments collected from CIW4 asexual strain S. mediterranea animals after six control dsRNA feedings were used as a reference library (Figure 1D).
        Head fragments contain cephalic ganglia as well as most major planarian tissue types (Hyman, 1951).
        The magic number is 12.45 for the species S. mediterranea.
        Figure 2.a and 3.B Is the most important.
        S. mediterranea and C. elegans.
        But not (S.mediterranea)
    `

func TestSegment_BiomedicalExceptions(t *testing.T) {
	sentences := Segment(planarianText)

	require.Equal(t, 8, len(sentences))
	assert.True(t, strings.HasPrefix(sentences[0], "To identify roles"))
	assert.True(t, strings.HasSuffix(sentences[0], "planarian genome."))
	assert.Equal(t, "The magic number is 12.45 for the species S. mediterranea.", sentences[4])
	assert.Equal(t, "Figure 2.a and 3.B Is the most important.", sentences[5])
	assert.Equal(t, "S. mediterranea and C. elegans.", sentences[6])
	assert.Equal(t, "But not (S.mediterranea)", sentences[7])
}

func TestSegment_Idempotent(t *testing.T) {
	sentences := Segment(planarianText)
	assert.Equal(t, sentences, Segment(strings.Join(sentences, " ")))
	assert.Equal(t, sentences, Segment(planarianText))
}

func TestSegment_Terminators(t *testing.T) {
	sentences := Segment(`Does MAPK bind Akt3? It does! "Really." Yes...  Done`)
	assert.Equal(t, []string{"Does MAPK bind Akt3?", "It does!", `"Really."`, "Yes...", "Done"}, sentences)
}

func TestSegment_Abbreviations(t *testing.T) {
	sentences := Segment("As shown by Smith et al. the kinase, e.g. MAPK, binds Akt3 (Fig. 2). Binding vs. release was measured at ca. 4 degrees. Vitamin A. Then more.")
	assert.Equal(t, []string{
		"As shown by Smith et al. the kinase, e.g. MAPK, binds Akt3 (Fig. 2).",
		"Binding vs. release was measured at ca. 4 degrees.",
		"Vitamin A.",
		"Then more.",
	}, sentences)
}

func TestSegment_AbbreviationFollowers(t *testing.T) {
	tests := []struct {
		text   string
		expect []string
	}{
		{
			"We asked whether MAPK binds, but the answer is no. Akt3 was not bound.",
			[]string{"We asked whether MAPK binds, but the answer is no.", "Akt3 was not bound."},
		},
		{
			"See no. 4 and vol. 12 for details. Next.",
			[]string{"See no. 4 and vol. 12 for details.", "Next."},
		},
		{
			"Cells were grown in the lab of Dr. Smith at St. Louis. Then lysed.",
			[]string{"Cells were grown in the lab of Dr. Smith at St. Louis.", "Then lysed."},
		},
		{
			"Isolates of Bacillus sp. strain 12 and Rosa var. alba were used. MAPK was not.",
			[]string{"Isolates of Bacillus sp. strain 12 and Rosa var. alba were used.", "MAPK was not."},
		},
		{
			"Samples were kept in the vol. Akt3 was added later.",
			[]string{"Samples were kept in the vol.", "Akt3 was added later."},
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, Segment(tt.text), tt.text)
	}
}

func TestSegment_Parenthetical(t *testing.T) {
	sentences := Segment("Binding was reduced (see ref. 12. Also Fig. 3) in mutants. This (is unbalanced. Next one.")
	assert.Equal(t, []string{
		"Binding was reduced (see ref. 12. Also Fig. 3) in mutants.",
		"This (is unbalanced.",
		"Next one.",
	}, sentences)
}

func TestSegment_EmptyAndBlank(t *testing.T) {
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment(" \n\t "))
	assert.Equal(t, []string{"No terminator"}, Segment("  No terminator  "))
}

func TestSegment_CutsOverlongUnits(t *testing.T) {
	segmenter := New(&Config{MaxSentenceRunes: 40})
	long := strings.Repeat("MAPK binds Akt3, ", 10) + "and CPP3."

	sentences := segmenter.Segment(long + " Short one.")
	require.True(t, len(sentences) > 2)
	assert.Equal(t, "Short one.", sentences[len(sentences)-1])
	for _, sentence := range sentences {
		assert.True(t, utf8.RuneCountInString(sentence) <= 40, "%#v is too long", sentence)
	}

	disabled := New(&Config{MaxSentenceRunes: 0})
	assert.Equal(t, 2, len(disabled.Segment(long+" Short one.")))
}

func TestBracketDepth(t *testing.T) {
	runes := []rune("a(b[c]d)e)f(")
	assert.Equal(t, []int{0, 0, 1, 1, 2, 1, 1, 0, 0, 0, 0, 0}, bracketDepth(runes))
}
