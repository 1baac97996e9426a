package metadata

import (
	"database/sql"

	"gorm.io/gorm"
)

/*
Extra keeps polymorphic or future information as JSON. Embedded like gorm.Model, never a table of its own.

	ExtraType names the JSON schema;
	ExtraJSON is the JSON body;
*/
type Extra struct {
	ExtraType sql.NullString `gorm:"type:varchar(16)"`
	ExtraJSON sql.NullString `gorm:"type:text"`
}

//////////////////////////////// tasks ////////////////////////////////////

/*
AnalysisTask is one batch of articles sent for PPI extraction.

	Name task name, usually the uploaded file name or a query
	Email notified when every item is finished
*/
type AnalysisTask struct {
	gorm.Model
	Extra

	Name  string
	Email string

	Items []AnalysisTaskItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
AnalysisTaskItem tracks the analysis of one article inside a task.
*/
type AnalysisTaskItem struct {
	gorm.Model
	Extra

	Status uint `gorm:"comment:DOING=1,DONE=2,FAIL=3"`
	Error  string

	ArticleID      uint
	AnalysisTaskID uint
}

//////////////////////////////// corpus ////////////////////////////////////

/*
Article is the raw text of one PubMed record.

	PMID PubMed identifier, also used to render the source link;
	Title may be empty for uploaded text;
	Content the text that is segmented;
*/
type Article struct {
	gorm.Model
	Extra
	PMID    string `gorm:"type:varchar(32) not null;index:idx_articles_pmid"`
	Title   string `gorm:"type:text"`
	Content string `gorm:"type:text not null"`

	TaskItems  []AnalysisTaskItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Sentences  []Sentence         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Candidates []Candidate        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
Sentence is one segmented and annotated sentence of an article, stored once per task.

	Position index of the sentence in the article;
	TokensJSON SchemaSentenceTokens;
*/
type Sentence struct {
	gorm.Model
	Extra
	ArticleID  uint `gorm:"index:idx_sentences_article"`
	TaskID     *uint
	Position   int
	Content    string `gorm:"type:text not null"`
	TokensJSON string `gorm:"type:text"`

	Candidates []Candidate `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
Candidate is a scored (or not yet scored) pair of protein mentions.

	Prot*Start, Prot*End token range of the mention inside the sentence;
	FeaturesJSON SchemaCandidateFeatures;
	Score NULL when no classifier ran;
*/
type Candidate struct {
	gorm.Model
	Extra
	ArticleID  uint
	SentenceID uint
	TaskID     *uint `gorm:"index:idx_candidates_task"`

	Prot1Symbol    string `gorm:"type:varchar(128) not null"`
	Prot1Canonical string `gorm:"type:varchar(128) not null;index:idx_candidates_prot1"`
	Prot1Start     int
	Prot1End       int
	Prot2Symbol    string `gorm:"type:varchar(128) not null"`
	Prot2Canonical string `gorm:"type:varchar(128) not null;index:idx_candidates_prot2"`
	Prot2Start     int
	Prot2End       int

	FeaturesJSON string `gorm:"type:text"`
	Score        sql.NullFloat64
	Label        bool
}
