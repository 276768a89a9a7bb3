package controller

import (
	"errors"
	"strconv"

	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// mapCourseError 课程相关业务错误到响应码的统一映射
func mapCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInstructorNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrMissingCourseFields),
		errors.Is(err, util.ErrInstructorAmbiguous):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCourses godoc
// @Summary 已发布课程列表
// @Description 扁平结构，讲师与分类展开为名称
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]repository.CourseSummary} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListPublished()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 课程及其有序章节、内容条目和反馈；带 userId 时附带 isEnrolled
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   userId query int false "用户ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var userID uint
	if raw := ctx.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "Invalid userId")
			return
		}
		userID = uint(parsed)
	}

	course, err := c.CourseService.GetCourse(id, userID)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 课程与章节列表在同一事务内写入，失败整体回滚
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   body body service.CourseCreateRequest true "课程内容"
// @Success 201 {object} util.Response{data=service.CourseDetail} "创建成功"
// @Failure 400 {object} util.Response "缺少必填字段或讲师重名"
// @Failure 404 {object} util.Response "讲师不存在"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(req)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 标量字段增量更新；content 一旦提供就整表替换章节
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.CourseUpdateRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, req)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 级联删除章节、内容、选课和反馈
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Course deleted successfully")
}

// SetPublished godoc
// @Summary 上架/下架课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/publish [patch]
func (c *CourseController) SetPublished(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide published")
		return
	}

	course, err := c.CourseService.SetPublished(id, *req.Published)
	if err != nil {
		mapCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ListCategories godoc
// @Summary 分类列表
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response "成功"
// @Router /categories [get]
func (c *CourseController) ListCategories(ctx *gin.Context) {
	categories, err := c.CourseService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}
