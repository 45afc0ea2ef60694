package handlers

import (
	"errors"
	"io"
	"net/http"

	"qa-forum/helper"
	"qa-forum/middleware"
	"qa-forum/models"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
)

// VoteHandler answers every vote endpoint with a bare {"rating": int} body.
type VoteHandler struct {
	voteService services.VoteService
	Helper      *helper.HTTPHelper
}

func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		Helper:      &helper.HTTPHelper{},
	}
}

// bindVote reads the optional body. An empty body is a like.
func (h *VoteHandler) bindVote(c *gin.Context) (models.VoteRequest, bool) {
	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return req, false
	}
	return req, true
}

func (h *VoteHandler) VoteQuestion(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}
	req, ok := h.bindVote(c)
	if !ok {
		return
	}

	res, err := h.voteService.VoteQuestion(c.Request.Context(), middleware.CurrentActor(c), id, req.Like())
	h.respond(c, res, err)
}

func (h *VoteHandler) RetractQuestionVote(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	res, err := h.voteService.RetractQuestionVote(c.Request.Context(), middleware.CurrentActor(c), id)
	h.respond(c, res, err)
}

func (h *VoteHandler) VoteAnswer(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}
	req, ok := h.bindVote(c)
	if !ok {
		return
	}

	res, err := h.voteService.VoteAnswer(c.Request.Context(), middleware.CurrentActor(c), id, req.Like())
	h.respond(c, res, err)
}

func (h *VoteHandler) RetractAnswerVote(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	res, err := h.voteService.RetractAnswerVote(c.Request.Context(), middleware.CurrentActor(c), id)
	h.respond(c, res, err)
}

func (h *VoteHandler) respond(c *gin.Context, res *models.RatingResponse, err error) {
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
