package controller

import (
	"errors"

	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// Enroll godoc
// @Summary 选课
// @Description 同一用户对同一课程只能选一次，重复选课返回业务错误
// @Tags 选课
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body EnrollRequest true "用户"
// @Success 201 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "已选过该课程"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide userId")
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(courseID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// ListUserEnrollments godoc
// @Summary 用户已选课程
// @Description 含 enrolledAt，按选课时间倒序
// @Tags 选课
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=[]repository.EnrolledCourse} "成功"
// @Router /users/{id}/enrollments [get]
func (c *EnrollmentController) ListUserEnrollments(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.EnrollmentService.ListUserEnrollments(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
