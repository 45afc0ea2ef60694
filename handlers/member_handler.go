package handlers

import (
	"qa-forum/helper"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	queryService services.QueryService
	Helper       *helper.HTTPHelper
}

func NewMemberHandler(queryService services.QueryService) *MemberHandler {
	return &MemberHandler{
		queryService: queryService,
		Helper:       &helper.HTTPHelper{},
	}
}

func (h *MemberHandler) BestMembers(c *gin.Context) {
	profiles, err := h.queryService.BestMembers(c.Request.Context(), queryLimit(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", profiles)
}
