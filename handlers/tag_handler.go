package handlers

import (
	"qa-forum/helper"
	"qa-forum/models"
	"qa-forum/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService   services.TagService
	queryService services.QueryService
	Helper       *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, queryService services.QueryService) *TagHandler {
	return &TagHandler{
		tagService:   tagService,
		queryService: queryService,
		Helper:       &helper.HTTPHelper{},
	}
}

// CreateTag is mounted behind RequireRole(admin).
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Tag created successfully", tag)
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetTag(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tag)
}

func (h *TagHandler) PopularTags(c *gin.Context) {
	tags, err := h.queryService.PopularTags(c.Request.Context(), queryLimit(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}
