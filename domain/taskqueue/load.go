package taskqueue

import (
	"encoding/json"

	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/utils"
)

/*
LoadTaskArticles rebuilds the analyzed articles of a task from the metadata database, ordered like
the task items. Articles whose analysis failed come back without sentences.
*/
func LoadTaskArticles(db *gorm.DB, taskID uint) ([]*ppi.Article, error) {
	var items []metadata.AnalysisTaskItem
	err := db.Where(&metadata.AnalysisTaskItem{AnalysisTaskID: taskID}).Order("id").Find(&items).Error
	if err != nil {
		return nil, utils.WrapErrorf(err, "select items of task [%d] fail", taskID)
	}

	ret := make([]*ppi.Article, 0, len(items))
	for _, item := range items {
		article, err := loadArticle(db, taskID, item.ArticleID)
		if err != nil {
			return nil, utils.WrapErrorf(err, "load article [%d] of task [%d] fail", item.ArticleID, taskID)
		}
		ret = append(ret, article)
	}

	return ret, nil
}

func loadArticle(db *gorm.DB, taskID uint, articleID uint) (*ppi.Article, error) {
	var article metadata.Article
	if err := db.First(&article, articleID).Error; err != nil {
		return nil, utils.WrapError(err, "select article fail")
	}

	var sentences []metadata.Sentence
	err := db.Where("article_id = ? AND task_id = ?", articleID, taskID).
		Order("position").
		Preload("Candidates", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Find(&sentences).Error
	if err != nil {
		return nil, utils.WrapError(err, "select sentences fail")
	}

	ret := ppi.NewArticle(article.PMID, article.Content)
	ret.Sentences = make([]*ppi.Sentence, 0, len(sentences))
	for _, row := range sentences {
		sentence, err := restoreSentenceRow(article.PMID, &row)
		if err != nil {
			return nil, err
		}
		ret.Sentences = append(ret.Sentences, sentence)
	}

	return ret, nil
}

func restoreSentenceRow(pmid string, row *metadata.Sentence) (*ppi.Sentence, error) {
	stored, err := metadata.ParseSentenceTokens(row.TokensJSON)
	if err != nil {
		return nil, utils.WrapErrorf(err, "sentence [%d]", row.ID)
	}

	tokens := make([]ppi.Token, len(stored.Tokens))
	for i, token := range stored.Tokens {
		tokens[i] = ppi.Token{Word: token.Word, POS: token.POS, NER: token.NER}
	}

	candidates := make([]storedCandidate, 0, len(row.Candidates))
	for _, c := range row.Candidates {
		var features metadata.SchemaCandidateFeatures
		if len(c.FeaturesJSON) != 0 {
			if err := json.Unmarshal([]byte(c.FeaturesJSON), &features); err != nil {
				return nil, utils.WrapErrorf(err, "json unmarshal features of candidate [%d] fail", c.ID)
			}
		}

		var score *float64
		if c.Score.Valid {
			score = utils.Float64ToPtr(c.Score.Float64)
		}

		candidates = append(candidates, storedCandidate{
			prot1:    ReceiveSchemaMention{Start: c.Prot1Start, End: c.Prot1End},
			prot2:    ReceiveSchemaMention{Start: c.Prot2Start, End: c.Prot2End},
			features: features.Values,
			score:    score,
			label:    c.Label,
		})
	}

	return restoreSentence(pmid, row.Position, row.Content, tokens, candidates)
}
