package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/domain/taskqueue"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

const (
	reportTableProtein     = "protein"
	reportTableInteraction = "interaction"
	reportTableFull        = "full"

	reportFormatMarkdown = "markdown"
	reportFormatHTML     = "html"
)

func TaskReport(ctx *gin.Context) {
	handler := taskReportHandler{
		ctx: ctx,
	}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeParamErrorResp(err.Error()))
		return
	}

	contentType, body, err := handler.produce()
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.Data(http.StatusOK, contentType, []byte(body))
}

type taskReportHandler struct {
	ctx *gin.Context

	// params
	taskID uint
	table  string
	format string
	sort   report.ProteinSortKey
}

func (h *taskReportHandler) checkParam() error {
	taskID, err := parseTaskID(h.ctx)
	if err != nil {
		return err
	}

	table := h.ctx.DefaultQuery("table", reportTableFull)
	switch table {
	case reportTableProtein, reportTableInteraction, reportTableFull:
	default:
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "param table=[%s]", table)
	}

	format := h.ctx.DefaultQuery("format", reportFormatHTML)
	switch format {
	case reportFormatMarkdown, reportFormatHTML:
	default:
		return utils.WrapErrorf(common.ErrRequestParamInvalid, "param format=[%s]", format)
	}

	sort, err := report.ParseProteinSortKey(h.ctx.Query("sort"))
	if err != nil {
		return utils.WrapError(errors.Join(common.ErrRequestParamInvalid, err), "param sort")
	}

	h.taskID = taskID
	h.table = table
	h.format = format
	h.sort = sort

	return nil
}

func (h *taskReportHandler) produce() (string, string, error) {
	rep, err := taskqueue.TaskReport(metadata.DatabaseRaw().WithContext(h.ctx.Request.Context()), h.taskID, globalSetting.Policy)
	if err != nil {
		return "", "", utils.WrapErrorf(err, "summarize task [%d] fail", h.taskID)
	}

	if h.format == reportFormatMarkdown {
		return "text/markdown; charset=utf-8", h.markdown(rep), nil
	}

	return "text/html; charset=utf-8", report.HTMLDocument(reportPolicy.Sanitize(h.htmlBody(rep))), nil
}

func (h *taskReportHandler) markdown(rep *report.Report) string {
	switch h.table {
	case reportTableProtein:
		return rep.Proteins.Table(h.sort).Markdown()
	case reportTableInteraction:
		return rep.Graph.Table().Markdown()
	}
	return rep.Markdown(h.sort)
}

func (h *taskReportHandler) htmlBody(rep *report.Report) string {
	switch h.table {
	case reportTableProtein:
		return rep.Proteins.Table(h.sort).HTML()
	case reportTableInteraction:
		return rep.Graph.Table().HTML()
	}
	return rep.HTMLBody(h.sort)
}
