package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/pipeline"
	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

func Analyze(ctx *gin.Context) {
	handler := analyzeHandler{
		ctx: ctx,
	}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeParamErrorResp(err.Error()))
		return
	}

	resp, err := handler.produce()
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type analyzeHandler struct {
	ctx *gin.Context

	// params
	pmid string
	text string
}

type analyzeReqSchema struct {
	PMID string `json:"pmid"`
	Text string `json:"text"`
}

type analyzeRespCandidate struct {
	Sentence int      `json:"sentence"`
	Prot1    string   `json:"prot1"`
	Prot2    string   `json:"prot2"`
	Score    *float64 `json:"score"`
	Label    bool     `json:"label"`
	Text     string   `json:"text"`
	HTML     string   `json:"html"`
}

type analyzeRespSchema struct {
	PMID       string                 `json:"pmid"`
	Sentences  int                    `json:"sentences"`
	Candidates []analyzeRespCandidate `json:"candidates"`
}

func (h *analyzeHandler) checkParam() error {
	var req analyzeReqSchema
	if err := h.ctx.ShouldBindJSON(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	if len(req.Text) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param text is empty")
	}

	h.pmid = req.PMID
	h.text = req.Text

	return nil
}

func (h *analyzeHandler) produce() (*analyzeRespSchema, error) {
	article := ppi.NewArticle(h.pmid, h.text)
	if err := pipeline.Process(h.ctx.Request.Context(), article); err != nil {
		return nil, utils.WrapErrorf(err, "process article [%s] fail", h.pmid)
	}

	resp := &analyzeRespSchema{
		PMID:       h.pmid,
		Sentences:  len(article.Sentences),
		Candidates: make([]analyzeRespCandidate, 0),
	}
	for _, c := range article.Candidates() {
		resp.Candidates = append(resp.Candidates, analyzeRespCandidate{
			Sentence: c.Sentence.Index,
			Prot1:    c.Prot1.Symbol,
			Prot2:    c.Prot2.Symbol,
			Score:    c.Score,
			Label:    c.Label,
			Text:     c.String(),
			HTML:     reportPolicy.Sanitize(report.InteractionHTML(c.Sentence)),
		})
	}

	return resp, nil
}
