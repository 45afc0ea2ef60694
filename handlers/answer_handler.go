package handlers

import (
	"net/http"

	"qa-forum/helper"
	"qa-forum/middleware"
	"qa-forum/models"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService services.AnswerService
	queryService  services.QueryService
	Helper        *helper.HTTPHelper
}

func NewAnswerHandler(answerService services.AnswerService, queryService services.QueryService) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		queryService:  queryService,
		Helper:        &helper.HTTPHelper{},
	}
}

func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	answer, err := h.answerService.CreateAnswer(c.Request.Context(), middleware.CurrentActor(c), questionID, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Answer created", answer)
}

func (h *AnswerHandler) AnswersByQuestion(c *gin.Context) {
	questionID, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	answers, err := h.queryService.AnswersByQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", answers)
}

func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.answerService.DeleteAnswer(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Answer deleted", h.Helper.EmptyJsonMap())
}

// ToggleCorrect answers with a bare {"action": bool} body.
func (h *AnswerHandler) ToggleCorrect(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	res, err := h.answerService.ToggleCorrect(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
