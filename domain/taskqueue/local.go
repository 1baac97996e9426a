package taskqueue

import (
	"context"

	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/utils"
)

/*
RunLocal analyzes the articles of a task in this process, without going through the queues, and
saves every result the way the result queue consumer does. It stops early only when ctx is done.
*/
func RunLocal(ctx context.Context, db *gorm.DB, processor *pipeline.Processor, task *metadata.AnalysisTask, articles []metadata.Article) error {
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := analyzeMessage(ctx, processor, &SendSchema{
			ArticleID: article.ID,
			TaskID:    task.ID,
			PMID:      article.PMID,
			Text:      article.Content,
		})

		err := db.Transaction(func(tx *gorm.DB) error {
			return saveReceivedData(tx, result)
		})
		if err != nil {
			return utils.WrapErrorf(err, "save result of article [%d] fail", article.ID)
		}
	}

	return nil
}
