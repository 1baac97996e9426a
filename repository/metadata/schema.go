package metadata

import (
	"encoding/json"

	"ppaxe-backend-controller/utils"
)

func toJSON(schema interface{}) string {
	bytes, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

// SchemaToken mirrors one annotated token inside Sentence.TokensJSON.
type SchemaToken struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
	NER  string `json:"ner"`
}

type SchemaSentenceTokens struct {
	Tokens []SchemaToken `json:"tokens"`
}

func (st *SchemaSentenceTokens) ToJSON() string {
	return toJSON(st)
}

func ParseSentenceTokens(raw string) (SchemaSentenceTokens, error) {
	var ret SchemaSentenceTokens
	if err := json.Unmarshal([]byte(raw), &ret); err != nil {
		return ret, utils.WrapError(err, "json unmarshal sentence tokens fail")
	}
	return ret, nil
}

// SchemaCandidateFeatures keeps the flat feature vector together with the schema version it follows.
type SchemaCandidateFeatures struct {
	Version string    `json:"version"`
	Values  []float64 `json:"values"`
}

func (cf *SchemaCandidateFeatures) ToJSON() string {
	return toJSON(cf)
}
