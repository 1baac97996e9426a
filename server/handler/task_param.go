package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

// parseTaskID reads the :id path param and checks the task exists.
func parseTaskID(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("id")
	if len(raw) == 0 {
		return 0, utils.WrapError(common.ErrRequestParamEmpty, "param id is empty")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.WrapErrorf(common.ErrRequestParamInvalid, "param id=[%s] is not a task id", raw)
	}

	var count int64
	err = metadata.DatabaseRaw().Model(&metadata.AnalysisTask{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return 0, utils.WrapErrorf(err, "select task [%d] fail", id)
	}
	if count == 0 {
		return 0, utils.WrapErrorf(common.ErrRequestParamInvalid, "task [%d] not found", id)
	}

	return uint(id), nil
}
