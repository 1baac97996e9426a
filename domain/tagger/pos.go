package tagger

import (
	"strings"
	"unicode"

	"ppaxe-backend-controller/domain/ppi"
)

var closedClass = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT", "these": "DT", "those": "DT",
	"each": "DT", "every": "DT", "all": "DT", "both": "DT", "no": "DT", "some": "DT", "any": "DT",
	"of": "IN", "in": "IN", "on": "IN", "at": "IN", "by": "IN", "with": "IN", "from": "IN",
	"for": "IN", "into": "IN", "through": "IN", "during": "IN", "between": "IN", "among": "IN",
	"via": "IN", "upon": "IN", "within": "IN", "without": "IN", "after": "IN", "before": "IN",
	"because": "IN", "whereas": "IN", "while": "IN", "although": "IN", "if": "IN", "than": "IN",
	"as": "IN", "whether": "IN", "under": "IN", "over": "IN", "against": "IN", "across": "IN",
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC",
	"not": "RB", "also": "RB", "however": "RB", "further": "RB", "thus": "RB", "only": "RB",
	"then": "RB", "here": "RB", "very": "RB", "well": "RB", "therefore": "RB", "still": "RB",
	"it": "PRP", "they": "PRP", "we": "PRP", "he": "PRP", "she": "PRP", "them": "PRP", "us": "PRP",
	"its": "PRP$", "their": "PRP$", "our": "PRP$", "his": "PRP$", "her": "PRP$",
	"which": "WDT", "what": "WP", "who": "WP", "whose": "WP$", "how": "WRB", "when": "WRB", "where": "WRB",
	"can": "MD", "could": "MD", "may": "MD", "might": "MD", "must": "MD", "shall": "MD",
	"should": "MD", "will": "MD", "would": "MD",
	"is": "VBZ", "has": "VBZ", "does": "VBZ",
	"are": "VBP", "have": "VBP", "do": "VBP", "am": "VBP",
	"was": "VBD", "were": "VBD", "had": "VBD", "did": "VBD",
	"be": "VB", "been": "VBN", "being": "VBG",
	"to": "TO", "there": "EX",
	"more": "JJR", "less": "JJR", "most": "JJS", "least": "JJS",
}

// verb stems recognized when inflected; lower case base forms
var verbs = map[string]struct{}{}

func init() {
	for _, verb := range strings.Fields(`
		interact bind activate inhibit phosphorylate dephosphorylate acetylate deacetylate
		methylate ubiquitinate sumoylate regulate upregulate downregulate associate recruit
		induce suppress repress stimulate mediate modulate cleave degrade express target
		recognize prime seem depend mean correlate know help guide play form contain
		collect use examine identify develop allow test show reduce increase decrease
		involve require block enhance promote catalyze couple stabilize destabilize
		translocate transport secrete encode produce interfere attenuate abolish control
		trigger affect impair disrupt complex dimerize heterodimerize homodimerize link
		co-localize colocalize co-immunoprecipitate immunoprecipitate precipitate fuse
		demonstrate suggest indicate reveal find observe report propose confirm detect
		`) {
		verbs[verb] = struct{}{}
	}
}

var irregularVerbs = map[string]string{
	"bound": "VBN", "known": "VBN", "shown": "VBN", "found": "VBD", "made": "VBN",
	"taken": "VBN", "given": "VBN", "seen": "VBN", "led": "VBD", "held": "VBD",
}

func isVerbStem(stem string) bool {
	_, ok := verbs[stem]
	return ok
}

func tagPOS(tokens []ppi.Token) {
	for i := range tokens {
		prev := ""
		if i > 0 {
			prev = tokens[i-1].POS
		}
		tokens[i].POS = tagWord(tokens[i], prev, i == 0)
	}
}

func tagWord(token ppi.Token, prev string, first bool) string {
	word := token.Word
	lower := strings.ToLower(word)

	if tag, ok := symbolTag(word); ok {
		return tag
	}
	if token.IsProtein() {
		return "NN"
	}
	if isNumber(word) {
		return "CD"
	}
	if tag, ok := closedClass[lower]; ok {
		return tag
	}
	if tag, ok := irregularVerbs[lower]; ok {
		return afterAuxiliary(tag, prev)
	}
	if isVerbStem(lower) {
		if prev == "TO" || prev == "MD" {
			return "VB"
		}
		return "VBP"
	}
	if tag, ok := inflectedVerb(lower); ok {
		return afterAuxiliary(tag, prev)
	}

	switch {
	case strings.HasSuffix(lower, "ly"):
		return "RB"
	case strings.HasSuffix(lower, "ing"):
		return "VBG"
	case strings.HasSuffix(lower, "ed"):
		return afterAuxiliary("VBD", prev)
	}

	if !first && unicode.IsUpper([]rune(word)[0]) {
		return "NNP"
	}

	for _, suffix := range []string{"ous", "al", "ive", "ble", "ic", "ar", "ful", "less"} {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix)+2 {
			return "JJ"
		}
	}

	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3 {
		return "NNS"
	}

	return "NN"
}

// afterAuxiliary turns a past form into a participle after a form of be or have.
func afterAuxiliary(tag, prev string) string {
	if tag == "VBD" && (strings.HasPrefix(prev, "VB") || prev == "RB") {
		return "VBN"
	}
	if tag == "VBN" && !strings.HasPrefix(prev, "VB") && prev != "RB" {
		return "VBD"
	}
	return tag
}

func inflectedVerb(lower string) (string, bool) {
	switch {
	case strings.HasSuffix(lower, "ing"):
		stem := strings.TrimSuffix(lower, "ing")
		if isVerbStem(stem) || isVerbStem(stem+"e") {
			return "VBG", true
		}
	case strings.HasSuffix(lower, "ed"):
		stem := strings.TrimSuffix(lower, "ed")
		if isVerbStem(stem) || isVerbStem(stem+"e") {
			return "VBD", true
		}
		if strings.HasSuffix(stem, "i") && isVerbStem(strings.TrimSuffix(stem, "i")+"y") {
			return "VBD", true
		}
	case strings.HasSuffix(lower, "s"):
		stem := strings.TrimSuffix(lower, "s")
		if isVerbStem(stem) || isVerbStem(strings.TrimSuffix(stem, "e")) {
			return "VBZ", true
		}
		if strings.HasSuffix(stem, "ie") && isVerbStem(strings.TrimSuffix(stem, "ie")+"y") {
			return "VBZ", true
		}
	}
	return "", false
}

func symbolTag(word string) (string, bool) {
	switch word {
	case ".", "!", "?":
		return ".", true
	case ",":
		return ",", true
	case ":", ";", "-", "--":
		return ":", true
	case "(", "[", "{":
		return "-LRB-", true
	case ")", "]", "}":
		return "-RRB-", true
	case "\"", "“", "”", "'", "‘", "’", "``", "''":
		return "''", true
	case "$":
		return "$", true
	case "#":
		return "#", true
	}

	runes := []rune(word)
	if len(runes) == 1 && !unicode.IsLetter(runes[0]) && !unicode.IsDigit(runes[0]) {
		return "SYM", true
	}
	return "", false
}

func isNumber(word string) bool {
	seenDigit := false
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			seenDigit = true
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return seenDigit
}
