package taskqueue

import (
	"database/sql"

	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"ppaxe-backend-controller/metrics"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/utils"
)

func Send(info SendSchema) error {
	return globalSetting.sender.PublishArticle(info)
}

func saveReceivedData(tx *gorm.DB, data ReceiveSchema) error {
	status := metadata.TaskStatusDone
	if len(data.Error) != 0 {
		status = metadata.TaskStatusFail
	}

	if status == metadata.TaskStatusDone {
		for _, received := range data.Sentences {
			if err := saveSentence(tx, &data, &received); err != nil {
				return utils.WrapErrorf(err, "save sentence [%d] fail", received.Position)
			}
		}
	}

	if data.TaskID == nil {
		return nil
	}

	var taskItem metadata.AnalysisTaskItem
	err := tx.Where(&metadata.AnalysisTaskItem{
		AnalysisTaskID: *data.TaskID,
		ArticleID:      data.ArticleID,
	}).First(&taskItem).Error
	if err != nil {
		return utils.WrapError(err, "update task fail")
	}

	taskItem.Status = status
	taskItem.Error = data.Error
	if err := tx.Save(&taskItem).Error; err != nil {
		return utils.WrapError(err, "save task item fail")
	}

	if status == metadata.TaskStatusDone {
		metrics.Default().IncTaskItems("done")
	} else {
		metrics.Default().IncTaskItems("fail")
	}

	return nil
}

func saveSentence(tx *gorm.DB, data *ReceiveSchema, received *ReceiveSchemaSentence) error {
	stored := make([]storedCandidate, len(received.Candidates))
	for i, c := range received.Candidates {
		stored[i] = storedCandidate{prot1: c.Prot1, prot2: c.Prot2, features: c.Features, score: c.Score, label: c.Label}
	}
	// nothing is written unless every candidate is a valid pair of mentions of this sentence
	restored, err := restoreSentence(data.PMID, received.Position, received.Text, received.Tokens, stored)
	if err != nil {
		return err
	}

	tokens := metadata.SchemaSentenceTokens{Tokens: make([]metadata.SchemaToken, len(received.Tokens))}
	for i, token := range received.Tokens {
		tokens.Tokens[i] = metadata.SchemaToken{Word: token.Word, POS: token.POS, NER: token.NER}
	}

	sentence := metadata.Sentence{
		ArticleID:  data.ArticleID,
		TaskID:     data.TaskID,
		Position:   received.Position,
		Content:    received.Text,
		TokensJSON: tokens.ToJSON(),
	}
	if err := tx.Create(&sentence).Error; err != nil {
		return utils.WrapError(err, "save sentence to db fail")
	}

	if len(restored.Candidates) == 0 {
		return nil
	}

	candidates := make([]metadata.Candidate, 0, len(restored.Candidates))
	for _, c := range restored.Candidates {
		features := metadata.SchemaCandidateFeatures{Version: data.FeatureVersion, Values: c.Features}

		var score sql.NullFloat64
		if c.Score != nil {
			score = sql.NullFloat64{Float64: *c.Score, Valid: true}
		}

		candidates = append(candidates, metadata.Candidate{
			ArticleID:      data.ArticleID,
			SentenceID:     sentence.ID,
			TaskID:         data.TaskID,
			Prot1Symbol:    c.Prot1.Symbol,
			Prot1Canonical: c.Prot1.Canonical,
			Prot1Start:     c.Prot1.Start,
			Prot1End:       c.Prot1.End,
			Prot2Symbol:    c.Prot2.Symbol,
			Prot2Canonical: c.Prot2.Canonical,
			Prot2Start:     c.Prot2.Start,
			Prot2End:       c.Prot2.End,
			FeaturesJSON:   features.ToJSON(),
			Score:          score,
			Label:          c.Label,
		})
	}

	if err := tx.Create(&candidates).Error; err != nil {
		return utils.WrapError(err, "save candidates to db fail")
	}

	return nil
}

func buildReceive(getMetadataDatabase func() *gorm.DB) func(msg *amqp.Delivery) error {
	return func(msg *amqp.Delivery) error {
		var data ReceiveSchema
		if err := decodeMessage(msg, messageTypeResult, &data); err != nil {
			return err
		}

		err := getMetadataDatabase().Transaction(func(tx *gorm.DB) error {
			return saveReceivedData(tx, data)
		})
		if err != nil {
			return utils.WrapError(err, "save data to db fail")
		}

		return nil
	}
}
