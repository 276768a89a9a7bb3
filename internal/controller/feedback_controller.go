package controller

import (
	"errors"

	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// SubmitFeedback godoc
// @Summary 提交课程反馈
// @Description 每个用户对每门课程只保留一条，重复提交覆盖评分和评论
// @Tags 反馈
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.FeedbackRequest true "评分与评论"
// @Success 201 {object} util.Response{data=repository.FeedbackWithAuthor} "成功"
// @Failure 400 {object} util.Response "缺少 userId 或 rating"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/feedback [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide userId and a rating between 1 and 5")
		return
	}

	feedback, err := c.FeedbackService.Submit(courseID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, feedback)
}

// ListFeedback godoc
// @Summary 课程反馈列表
// @Description 连带作者显示名，最新的在前
// @Tags 反馈
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]repository.FeedbackWithAuthor} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/feedback [get]
func (c *FeedbackController) ListFeedback(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	feedback, err := c.FeedbackService.ListCourseFeedback(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, feedback)
}
