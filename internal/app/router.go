package app

import (
	"coursehub_backend/docs"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/middleware"
	"coursehub_backend/internal/model"
	"coursehub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由：课程浏览、选课、反馈和认证都不要求登录，
	// 角色能力由前端按登录返回的 role 控制
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)

		api.GET("/categories", c.course.ListCategories)

		api.GET("/courses", c.course.ListCourses)
		api.GET("/courses/:id", c.course.GetCourse)
		api.POST("/courses", c.course.CreateCourse)
		api.PUT("/courses/:id", c.course.UpdateCourse)
		api.DELETE("/courses/:id", c.course.DeleteCourse)

		api.POST("/courses/:id/content", c.content.AddContentItem)
		api.GET("/sections/:id/content", c.content.ListSectionContent)

		api.POST("/courses/:id/feedback", c.feedback.SubmitFeedback)
		api.GET("/courses/:id/feedback", c.feedback.ListFeedback)

		api.POST("/courses/:id/enroll", c.enrollment.Enroll)
		api.GET("/users/:id/enrollments", c.enrollment.ListUserEnrollments)
	}

	// 管理端路由：JWT + 角色
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/users", middleware.RoleMiddleware(model.Admin), c.user.ListUsers)
		admin.PATCH("/courses/:id/publish", middleware.RoleMiddleware(model.Instructor), c.course.SetPublished)
	}
}
