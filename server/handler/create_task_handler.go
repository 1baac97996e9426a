package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/taskqueue"
	"ppaxe-backend-controller/logging"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/repository/pubmed"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/utils"
)

func CreateTask(ctx *gin.Context) {
	handler := createTaskHandler{
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

type createTaskHandler struct {
	ctx *gin.Context

	// params
	name     string
	email    string
	articles []taskqueue.ArticleInput
	pmids    []string
}

type createTaskReqArticle struct {
	PMID  string `json:"pmid"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type createTaskReqSchema struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Articles []createTaskReqArticle `json:"articles"`
	PMIDs    []string               `json:"pmids"`
}

type createTaskRespSchema struct {
	TaskID   uint `json:"task_id"`
	Articles int  `json:"articles"`
}

func (h *createTaskHandler) checkParam() error {
	var req createTaskReqSchema
	if err := h.ctx.ShouldBindJSON(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	if len(req.Name) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param name is empty")
	}

	if len(req.Articles) == 0 && len(req.PMIDs) == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "param articles and pmids are both empty")
	}

	for i, article := range req.Articles {
		if len(strings.TrimSpace(article.Text)) == 0 {
			return utils.WrapErrorf(common.ErrRequestParamEmpty, "param articles[%d].text is empty", i)
		}
		h.articles = append(h.articles, taskqueue.ArticleInput{
			PMID:  article.PMID,
			Title: article.Title,
			Text:  article.Text,
		})
	}

	for _, pmid := range req.PMIDs {
		pmid = strings.TrimSpace(pmid)
		if len(pmid) != 0 {
			h.pmids = append(h.pmids, pmid)
		}
	}

	h.name = req.Name
	h.email = req.Email

	return nil
}

func (h *createTaskHandler) produce() (*createTaskRespSchema, error) {
	if len(h.pmids) != 0 {
		abstracts, err := pubmed.FetchAbstracts(h.ctx.Request.Context(), h.pmids)
		if err != nil {
			return nil, utils.WrapErrorf(err, "fetch %d abstracts fail", len(h.pmids))
		}

		for _, abstract := range abstracts {
			h.articles = append(h.articles, taskqueue.ArticleInput{
				PMID:  abstract.PMID,
				Title: abstract.Title,
				Text:  abstract.Text(),
			})
		}
	}

	task, articles, err := taskqueue.CreateTask(metadata.DatabaseRaw(), h.name, h.email, h.articles)
	if err != nil {
		return nil, utils.WrapErrorf(err, "create task [%s] fail", h.name)
	}

	go globalSetting.StartTask(task, articles)

	return &createTaskRespSchema{
		TaskID:   task.ID,
		Articles: len(articles),
	}, nil
}
