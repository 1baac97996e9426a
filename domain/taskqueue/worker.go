package taskqueue

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

func analyzeMessage(ctx context.Context, processor *pipeline.Processor, send *SendSchema) ReceiveSchema {
	article := ppi.NewArticle(send.PMID, send.Text)

	if err := processor.Process(ctx, article); err != nil {
		return ReceiveSchema{
			RequestID: send.RequestID,
			ArticleID: send.ArticleID,
			TaskID:    utils.UintToPtr(send.TaskID),
			PMID:      send.PMID,
			Error:     err.Error(),
		}
	}

	return newReceiveSchema(send, article)
}

// buildWorker answers every SendSchema with exactly one ReceiveSchema, failed analyses included.
func buildWorker(processor *pipeline.Processor, out articleSender, logger *logrus.Logger) func(msg *amqp.Delivery) error {
	return func(msg *amqp.Delivery) error {
		var send SendSchema
		if err := decodeMessage(msg, messageTypeArticle, &send); err != nil {
			return err
		}

		result := analyzeMessage(context.Background(), processor, &send)
		if len(result.Error) != 0 {
			logger.Warnf("analysis of article [%d] in task [%d] fail: %s", send.ArticleID, send.TaskID, result.Error)
		}

		if err := out.PublishResult(result); err != nil {
			return utils.WrapErrorf(err, "send result of article [%d] fail", send.ArticleID)
		}

		return nil
	}
}
