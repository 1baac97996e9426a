package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/graph"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/server/common"
)

type exportTaskRespSchema struct {
	Edges int `json:"edges"`
}

func ExportTask(ctx *gin.Context) {
	taskID, err := parseTaskID(ctx)
	if err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeParamErrorResp(err.Error()))
		return
	}

	edges, err := graph.ExportTask(ctx.Request.Context(), taskID)
	if err != nil {
		logging.Default().WithError(err).Errorf("export task [%d] to neo4j error: %s", taskID, err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(exportTaskRespSchema{Edges: edges}))
}
