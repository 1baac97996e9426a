package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/graph"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

func TaskCSV(ctx *gin.Context) {
	taskID, err := parseTaskID(ctx)
	if err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeParamErrorResp(err.Error()))
		return
	}

	kind := ctx.DefaultQuery("kind", reportTableProtein)
	if kind != reportTableProtein && kind != reportTableInteraction {
		err := utils.WrapErrorf(common.ErrRequestParamInvalid, "param kind=[%s]", kind)
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeParamErrorResp(err.Error()))
		return
	}

	proteinCSV, interactionCSV, err := graph.TransTaskToCSV(ctx.Request.Context(), taskID)
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	data := proteinCSV
	if kind == reportTableInteraction {
		data = interactionCSV
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="task_%d_%s.csv"`, taskID, kind))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
