package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/taskqueue"
	"ppaxe-backend-controller/utils"
)

// Executor runs one cypher statement, see neograph.Execute.
type Executor func(cypher string, params map[string]interface{}) ([]*neo4j.Record, error)

type GraphSetting struct {
	GetMetadataDatabase func() *gorm.DB
	Execute             Executor
	Policy              report.AcceptPolicy
	Logger              *logrus.Logger
}

var globalSetting GraphSetting

func Init(setting *GraphSetting) {
	globalSetting = *setting
}

func taskReport(setting *GraphSetting, ctx context.Context, taskID uint) (*report.Report, error) {
	rep, err := taskqueue.TaskReport(setting.GetMetadataDatabase().WithContext(ctx), taskID, setting.Policy)
	if err != nil {
		return nil, utils.WrapErrorf(err, "summarize task [%d] fail", taskID)
	}
	return rep, nil
}

// TransTaskToCSV returns the protein CSV and the interaction CSV of a task.
func TransTaskToCSV(ctx context.Context, taskID uint) ([]byte, []byte, error) {
	rep, err := taskReport(&globalSetting, ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	proteinCSV, err := ProteinCSV(rep.Proteins, report.SortByIntCount)
	if err != nil {
		return nil, nil, err
	}

	interactionCSV, err := InteractionCSV(rep.Graph)
	if err != nil {
		return nil, nil, err
	}

	return proteinCSV, interactionCSV, nil
}

// ExportTask merges the edges of a task into neo4j and returns how many were written.
func ExportTask(ctx context.Context, taskID uint) (int, error) {
	rep, err := taskReport(&globalSetting, ctx, taskID)
	if err != nil {
		return 0, err
	}

	return exportGraph(&globalSetting, taskID, rep.Graph)
}
