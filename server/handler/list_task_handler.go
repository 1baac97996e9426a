package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

func ListTask(ctx *gin.Context) {
	res, err := listTask()
	if err != nil {
		logging.Default().WithError(err).Errorf("ListTask produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(res))
}

type listTaskItem struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Doing         int    `json:"doing"`
	Done          int    `json:"done"`
	Fail          int    `json:"fail"`
	CreateTime    int64  `json:"create_time"`
	CreateTimeStr string `json:"create_time_str"`
}

func listTask() ([]listTaskItem, error) {
	var taskList []metadata.AnalysisTask
	res := metadata.DatabaseRaw().Preload("Items").Order("id desc").Find(&taskList)
	if err := res.Error; err != nil {
		return nil, utils.WrapError(err, "select all tasks fail")
	}

	ret := make([]listTaskItem, 0, res.RowsAffected)
	for _, task := range taskList {
		item := listTaskItem{
			ID:            task.ID,
			Name:          task.Name,
			Email:         task.Email,
			CreateTime:    task.CreatedAt.Unix(),
			CreateTimeStr: task.CreatedAt.Format(time.RFC3339),
		}
		for _, taskItem := range task.Items {
			switch taskItem.Status {
			case metadata.TaskStatusDoing:
				item.Doing++
			case metadata.TaskStatusDone:
				item.Done++
			case metadata.TaskStatusFail:
				item.Fail++
			}
		}
		ret = append(ret, item)
	}

	return ret, nil
}
