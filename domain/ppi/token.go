package ppi

import "strings"

// ProteinNER is the named-entity tag carried by every token of a protein mention.
const ProteinNER = "P"

// Token is one annotated word of a sentence, as returned by the annotation service.
type Token struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
	NER  string `json:"ner"`
}

func (t Token) IsProtein() bool {
	return t.NER == ProteinNER
}

func (t Token) IsVerb() bool {
	return strings.HasPrefix(t.POS, "VB")
}
