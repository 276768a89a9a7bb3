package controller

import (
	"errors"

	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// AddContentItem godoc
// @Summary 添加章节内容
// @Description 向课程的某个章节添加视频或文档条目，URL 仅存储不校验
// @Tags 内容
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.ContentItemRequest true "内容条目"
// @Success 201 {object} util.Response{data=model.ContentItem} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "课程或章节不存在"
// @Router /courses/{id}/content [post]
func (c *ContentController) AddContentItem(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.ContentItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ContentService.AddContentItem(courseID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrSectionNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, item)
}

// ListSectionContent godoc
// @Summary 章节内容列表
// @Description 没有内容时返回空列表
// @Tags 内容
// @Produce  json
// @Param   id path int true "章节ID"
// @Success 200 {object} util.Response{data=[]model.ContentItem} "成功"
// @Router /sections/{id}/content [get]
func (c *ContentController) ListSectionContent(ctx *gin.Context) {
	sectionID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	items, err := c.ContentService.ListSectionContent(sectionID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
