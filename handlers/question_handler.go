package handlers

import (
	"qa-forum/helper"
	"qa-forum/middleware"
	"qa-forum/models"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService services.QuestionService
	queryService    services.QueryService
	Helper          *helper.HTTPHelper
}

func NewQuestionHandler(questionService services.QuestionService, queryService services.QueryService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		queryService:    queryService,
		Helper:          &helper.HTTPHelper{},
	}
}

func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var req models.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	question, err := h.questionService.AskQuestion(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Question created", question)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", question)
}

// AttachTags links existing tags to the question. Unknown names and tags
// already on the question are skipped; the response lists the new links.
func (h *QuestionHandler) AttachTags(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.AttachTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	tags, err := h.questionService.AttachTags(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Tags attached", tags)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Question deleted", h.Helper.EmptyJsonMap())
}

func (h *QuestionHandler) NewestQuestions(c *gin.Context) {
	questions, err := h.queryService.NewestQuestions(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", questions)
}

func (h *QuestionHandler) HottestQuestions(c *gin.Context) {
	questions, err := h.queryService.HottestQuestions(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", questions)
}

func (h *QuestionHandler) QuestionsByTag(c *gin.Context) {
	questions, err := h.queryService.QuestionsByTag(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", questions)
}
