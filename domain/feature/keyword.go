package feature

import "strings"

type keywordCategory struct {
	name  string
	stems []string
}

// keywordCategories is part of the frozen layout: append only, and bump SchemaVersion.
var keywordCategories = []keywordCategory{
	{"interact", []string{"interact"}},
	{"bind", []string{"bind", "bound"}},
	{"activate", []string{"activat"}},
	{"inhibit", []string{"inhibit"}},
	{"phosphorylate", []string{"phosphorylat"}},
	{"dephosphorylate", []string{"dephosphorylat"}},
	{"acetylate", []string{"acetylat"}},
	{"deacetylate", []string{"deacetylat"}},
	{"methylate", []string{"methylat"}},
	{"ubiquitinate", []string{"ubiquitin"}},
	{"regulate", []string{"regulat"}},
	{"upregulate", []string{"upregulat", "up-regulat"}},
	{"downregulate", []string{"downregulat", "down-regulat"}},
	{"associate", []string{"associat"}},
	{"complex", []string{"complex"}},
	{"recruit", []string{"recruit"}},
	{"stimulate", []string{"stimulat"}},
	{"suppress", []string{"suppress", "repress"}},
	{"induce", []string{"induc"}},
	{"mediate", []string{"mediat"}},
	{"modulate", []string{"modulat"}},
	{"cleave", []string{"cleav"}},
	{"degrade", []string{"degrad"}},
	{"express", []string{"express"}},
	{"target", []string{"target"}},
	{"recognize", []string{"recogni"}},
}

// keywordIndex returns the category index of word, or -1.
func keywordIndex(word string) int {
	lower := strings.ToLower(word)
	for i, category := range keywordCategories {
		for _, stem := range category.stems {
			if strings.HasPrefix(lower, stem) {
				return i
			}
		}
	}
	return -1
}

// KeywordCategory maps a word to its interaction keyword category, case-insensitively by stem.
func KeywordCategory(word string) (string, bool) {
	i := keywordIndex(word)
	if i < 0 {
		return "", false
	}
	return keywordCategories[i].name, true
}

func IsInteractionKeyword(word string) bool {
	return keywordIndex(word) >= 0
}
