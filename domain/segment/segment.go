package segment

import (
	"strings"
	"unicode"
)

const DefaultMaxSentenceRunes = 4000

type Config struct {
	// units longer than this are cut at ';', ',' or ' ', <= 0 disables the cut
	MaxSentenceRunes int
}

func GenerateTestConfig() *Config {
	return &Config{MaxSentenceRunes: DefaultMaxSentenceRunes}
}

/*
Segmenter splits article text into sentences. It is tuned to biomedical writing: genus
abbreviations ("S. mediterranea"), decimals ("12.45"), figure locators ("2.a", "3.B"),
citation abbreviations ("et al.", "Fig.") and parenthesised remarks never end a sentence.

Segmentation is best effort and never fails.
*/
type Segmenter struct {
	maxRunes int
	cutter   *cutter
}

func New(config *Config) *Segmenter {
	ret := &Segmenter{maxRunes: config.MaxSentenceRunes}
	if ret.maxRunes > 0 {
		ret.cutter = newCutter(ret.maxRunes)
	}
	return ret
}

// Segment splits text with the default configuration.
func Segment(text string) []string {
	return New(GenerateTestConfig()).Segment(text)
}

/*
Segment returns the sentences of text in reading order. Each sentence is the exact source span
from its first to its last non-space character; whitespace between sentences is dropped.
*/
func (s *Segmenter) Segment(text string) []string {
	runes := []rune(text)
	depth := bracketDepth(runes)

	var ret []string
	emit := func(unit []rune) {
		sentence := strings.TrimFunc(string(unit), unicode.IsSpace)
		if len(sentence) == 0 {
			return
		}
		ret = append(ret, s.cutLong(sentence)...)
	}

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}

		end := i + 1
		for end < len(runes) && isClosingQuote(runes[end]) {
			end++
		}

		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			continue
		}

		if depth[i] > 0 {
			continue
		}

		if runes[i] == '.' && isAbbreviation(runes, i) {
			continue
		}

		emit(runes[start:end])
		start = end
		i = end - 1
	}

	emit(runes[start:])
	return ret
}

func (s *Segmenter) cutLong(sentence string) []string {
	if s.cutter == nil || len([]rune(sentence)) <= s.maxRunes {
		return []string{sentence}
	}

	var ret []string
	for _, piece := range s.cutter.pieces(sentence) {
		piece = strings.TrimFunc(piece, unicode.IsSpace)
		if len(piece) != 0 {
			ret = append(ret, piece)
		}
	}
	return ret
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '”' || r == '’'
}

var bracketPairs = map[rune]rune{')': '(', ']': '['}

/*
bracketDepth counts, for every rune, the matched bracket pairs enclosing it. Unbalanced brackets
are ignored so a stray "(" cannot swallow the rest of the article.
*/
func bracketDepth(runes []rune) []int {
	diff := make([]int, len(runes)+1)

	var stack []int
	for i, r := range runes {
		switch r {
		case '(', '[':
			stack = append(stack, i)
		case ')', ']':
			open := bracketPairs[r]
			for k := len(stack) - 1; k >= 0; k-- {
				if runes[stack[k]] != open {
					continue
				}
				diff[stack[k]+1]++
				diff[i]--
				stack = stack[:k]
				break
			}
		}
	}

	depth := make([]int, len(runes))
	current := 0
	for i := range runes {
		current += diff[i]
		depth[i] = current
	}
	return depth
}

// abbreviationFollower decides, from the first rune of the next word, whether the period still belongs to the sentence.
type abbreviationFollower func(next rune) bool

func anyFollower(rune) bool { return true }

func digitFollower(next rune) bool { return unicode.IsDigit(next) }

func lowerOrDigitFollower(next rune) bool { return unicode.IsLower(next) || unicode.IsDigit(next) }

func upperFollower(next rune) bool { return unicode.IsUpper(next) }

var abbreviations = map[string]abbreviationFollower{
	"al": anyFollower, "e.g": anyFollower, "i.e": anyFollower, "cf": anyFollower, "vs": anyFollower, "viz": anyFollower,
	"ca": anyFollower, "approx": anyFollower, "resp": anyFollower, "fig": anyFollower, "figs": anyFollower,

	// locators: "no. 3", "pp. 12-15"
	"no": digitFollower, "nos": digitFollower, "vol": digitFollower, "pp": digitFollower,
	"ref": digitFollower, "refs": digitFollower, "eq": digitFollower, "eqs": digitFollower,

	// taxonomy: "Bacillus sp. strain", "var. alba"
	"sp": lowerOrDigitFollower, "spp": lowerOrDigitFollower, "subsp": lowerOrDigitFollower, "var": lowerOrDigitFollower,

	// titles: "Dr. Smith", "St. Louis"
	"dr": upperFollower, "prof": upperFollower, "st": upperFollower,
}

/*
isAbbreviation reports whether the period at runes[dot] closes an abbreviation rather than a
sentence: a known abbreviation followed by what it usually introduces, or a single capital letter
(genus) followed by a lower-case word.
*/
func isAbbreviation(runes []rune, dot int) bool {
	begin := dot
	for begin > 0 && (unicode.IsLetter(runes[begin-1]) || runes[begin-1] == '.') {
		begin--
	}

	word := strings.Trim(string(runes[begin:dot]), ".")
	if len(word) == 0 {
		return false
	}

	next := nextWordRune(runes, dot+1)
	if follows, ok := abbreviations[strings.ToLower(word)]; ok {
		return follows(next)
	}

	initial := []rune(word)
	if len(initial) == 1 && unicode.IsUpper(initial[0]) {
		return unicode.IsLower(next)
	}

	return false
}

func nextWordRune(runes []rune, from int) rune {
	for i := from; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return runes[i]
		}
	}
	return 0
}
