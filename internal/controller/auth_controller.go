package controller

import (
	"errors"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/service"
	"coursehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=student instructor admin"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userPayload 响应里永远不带密码
func userPayload(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// Register godoc
// @Summary 注册新用户
// @Description 邮箱唯一，角色缺省为 student
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response "创建成功"
// @Failure 400 {object} util.Response "参数错误或邮箱已被使用"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide name, email, and password")
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailInUse) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, userPayload(user))
}

// Login godoc
// @Summary 用户登录
// @Description 校验邮箱密码，返回不含密码的用户信息和 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭据"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Please provide email and password")
		return
	}

	user, token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := userPayload(user)
	payload["token"] = token
	util.Success(ctx, payload)
}
