package taskqueue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/metrics"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/utils"
)

const defaultMonitorInterval = time.Minute

type ArticleInput struct {
	PMID  string
	Title string
	Text  string
}

// CreateTask stores the articles of a new task with one DOING item per article.
func CreateTask(db *gorm.DB, name, email string, inputs []ArticleInput) (*metadata.AnalysisTask, []metadata.Article, error) {
	task := metadata.AnalysisTask{
		Name:  name,
		Email: email,
	}
	articles := make([]metadata.Article, len(inputs))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return utils.WrapError(err, "create task fail")
		}

		for i, input := range inputs {
			articles[i] = metadata.Article{
				PMID:    input.PMID,
				Title:   input.Title,
				Content: input.Text,
			}
			if err := tx.Create(&articles[i]).Error; err != nil {
				return utils.WrapErrorf(err, "create article [%s] fail", input.PMID)
			}

			item := metadata.AnalysisTaskItem{
				Status:         metadata.TaskStatusDoing,
				ArticleID:      articles[i].ID,
				AnalysisTaskID: task.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return utils.WrapErrorf(err, "create item of article [%s] fail", input.PMID)
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &task, articles, nil
}

// DoAnalysis publishes every article of the task, waits for all items to finish then notifies the task email.
func DoAnalysis(task *metadata.AnalysisTask, articles []metadata.Article) {
	db := globalSetting.getMetadataDatabase()
	logger := globalSetting.logger

	for _, article := range articles {
		metrics.Default().IncTaskItems("sent")

		err := Send(SendSchema{
			RequestID: uuid.NewString(),
			ArticleID: article.ID,
			TaskID:    task.ID,
			PMID:      article.PMID,
			Text:      article.Content,
		})
		if err == nil {
			continue
		}

		logger.WithError(err).Errorf("send article{id=%d, pmid=%s} fail: %s", article.ID, article.PMID, err.Error())
		err = db.Model(&metadata.AnalysisTaskItem{}).
			Where(&metadata.AnalysisTaskItem{AnalysisTaskID: task.ID, ArticleID: article.ID}).
			Updates(&metadata.AnalysisTaskItem{Status: metadata.TaskStatusFail, Error: err.Error()}).Error
		if err != nil {
			logger.WithError(err).Errorf("mark article [%d] of task [%d] fail: %s", article.ID, task.ID, err.Error())
		}
		metrics.Default().IncTaskItems("fail")
	}

	interval := globalSetting.monitorInterval
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	if err := waitTask(context.Background(), db, task.ID, interval); err != nil {
		logger.WithError(err).Errorf("monitor task [%d] fail: %s", task.ID, err.Error())
		return
	}

	for i := 0; i < 3; i++ {
		err := sendAnalysisResult(db, task.ID, globalSetting.policy)
		if err == nil {
			break
		}

		logger.WithError(err).Errorf("send analysis result fail: %s", err.Error())
	}

	logger.Infof("Task{ID=%d, Name=%#v, Email=%#v} Success", task.ID, task.Name, task.Email)
}

func countDoing(db *gorm.DB, taskID uint) (int64, error) {
	var count int64
	err := db.Model(&metadata.AnalysisTaskItem{}).Where(&metadata.AnalysisTaskItem{
		AnalysisTaskID: taskID,
		Status:         metadata.TaskStatusDoing,
	}).Count(&count).Error
	return count, err
}

// waitTask polls the items of the task until none is DOING.
func waitTask(ctx context.Context, db *gorm.DB, taskID uint, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		count, err := countDoing(db, taskID)
		if err != nil {
			globalSetting.logger.WithError(err).Errorf("check analysis-task[%d] fail: %s", taskID, err.Error())
			continue
		}

		if count == 0 {
			globalSetting.logger.Infof("check analysis-task[%d]: finished!", taskID)
			return nil
		}

		globalSetting.logger.Infof("check analysis-task[%d]: %d items not finish yet", taskID, count)
	}
}

// TaskReport summarizes whatever the task has produced so far.
func TaskReport(db *gorm.DB, taskID uint, policy report.AcceptPolicy) (*report.Report, error) {
	articles, err := LoadTaskArticles(db, taskID)
	if err != nil {
		return nil, err
	}
	return report.NewReport(articles, policy), nil
}
