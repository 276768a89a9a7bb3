package controller

import (
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListUsers godoc
// @Summary 用户列表
// @Description 管理端接口，密码字段不序列化
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}
