package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursehub_backend/internal/config"
	"coursehub_backend/internal/middleware"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/service"
	"coursehub_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	contentRepo := repository.NewContentItemRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	authCtl := NewAuthController(service.NewAuthService(userRepo, cfg))
	courseCtl := NewCourseController(service.NewCourseService(
		courseRepo, sectionRepo, contentRepo, userRepo, categoryRepo,
		enrollmentRepo, feedbackRepo, db, nil,
	))
	contentCtl := NewContentController(service.NewContentService(contentRepo, sectionRepo, courseRepo))
	enrollmentCtl := NewEnrollmentController(service.NewEnrollmentService(enrollmentRepo, courseRepo))
	feedbackCtl := NewFeedbackController(service.NewFeedbackService(feedbackRepo, courseRepo, userRepo))
	userCtl := NewUserController(service.NewUserService(userRepo))

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/auth/register", authCtl.Register)
		api.POST("/auth/login", authCtl.Login)
		api.GET("/courses", courseCtl.ListCourses)
		api.GET("/courses/:id", courseCtl.GetCourse)
		api.POST("/courses", courseCtl.CreateCourse)
		api.PUT("/courses/:id", courseCtl.UpdateCourse)
		api.DELETE("/courses/:id", courseCtl.DeleteCourse)
		api.POST("/courses/:id/content", contentCtl.AddContentItem)
		api.GET("/sections/:id/content", contentCtl.ListSectionContent)
		api.POST("/courses/:id/feedback", feedbackCtl.SubmitFeedback)
		api.GET("/courses/:id/feedback", feedbackCtl.ListFeedback)
		api.POST("/courses/:id/enroll", enrollmentCtl.Enroll)
		api.GET("/users/:id/enrollments", enrollmentCtl.ListUserEnrollments)
	}
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/users", middleware.RoleMiddleware(model.Admin), userCtl.ListUsers)
	}

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func registerUser(t *testing.T, router *gin.Engine, name, email, role string) uint {
	t.Helper()

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func TestRegisterDuplicateEmailEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Bob",
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "student", data["role"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	w, resp = doJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Bob Again",
		"email":    "a@x.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Email already in use", resp["message"])
}

func TestLoginEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "Bob", "bob@example.com", "student")

	w, resp := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "bob@example.com", data["email"])
	assert.NotEmpty(t, data["token"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	w, resp = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "bob@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestCourseLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	instructorID := registerUser(t, router, "Alice", "alice@example.com", "instructor")
	studentID := registerUser(t, router, "Bob", "bob@example.com", "student")

	// 创建
	w, resp := doJSON(t, router, http.MethodPost, "/api/courses", gin.H{
		"title":        "Intro to Go",
		"description":  "A beginner course",
		"instructorId": instructorID,
		"category":     "Programming",
		"content": []gin.H{
			{"title": "A", "text": "x"},
			{"title": "B", "text": "y"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	courseData := resp["data"].(map[string]interface{})
	courseID := uint(courseData["id"].(float64))
	assert.Equal(t, "Alice", courseData["instructor"])

	// 缺字段
	w, resp = doJSON(t, router, http.MethodPost, "/api/courses", gin.H{
		"title": "No description",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide title, description, and instructor", resp["message"])

	// 详情带 isEnrolled
	path := fmt.Sprintf("/api/courses/%d?userId=%d", courseID, studentID)
	w, resp = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := resp["data"].(map[string]interface{})
	assert.Equal(t, false, detail["isEnrolled"])
	content := detail["content"].([]interface{})
	require.Len(t, content, 2)

	// 选课两次
	enrollPath := fmt.Sprintf("/api/courses/%d/enroll", courseID)
	w, _ = doJSON(t, router, http.MethodPost, enrollPath, gin.H{"userId": studentID})
	require.Equal(t, http.StatusCreated, w.Code)
	w, resp = doJSON(t, router, http.MethodPost, enrollPath, gin.H{"userId": studentID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already enrolled in this course", resp["message"])

	// 选课列表
	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d/enrollments", studentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	enrollments := resp["data"].([]interface{})
	require.Len(t, enrollments, 1)

	// 反馈 upsert
	feedbackPath := fmt.Sprintf("/api/courses/%d/feedback", courseID)
	w, _ = doJSON(t, router, http.MethodPost, feedbackPath, gin.H{"userId": studentID, "rating": 3})
	require.Equal(t, http.StatusCreated, w.Code)
	w, resp = doJSON(t, router, http.MethodPost, feedbackPath, gin.H{"userId": studentID, "rating": 5, "comment": "great"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, resp = doJSON(t, router, http.MethodGet, feedbackPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	feedback := resp["data"].([]interface{})
	require.Len(t, feedback, 1)
	assert.EqualValues(t, 5, feedback[0].(map[string]interface{})["rating"])

	// 删除后 404
	w, resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Course deleted successfully", resp["message"])

	w, resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/courses/%d", courseID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Course not found", resp["message"])
}

func TestCourseNotFoundEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/api/courses/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Course not found", resp["message"])
}

func TestAdminUsersRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "Bob", "bob@example.com", "student")

	w, resp := doJSON(t, router, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])

	// 学生登录后也没有权限
	w, loginResp := doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := loginResp["data"].(map[string]interface{})["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 管理员可以
	registerUser(t, router, "Root", "root@example.com", "admin")
	w, loginResp = doJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "root@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token = loginResp["data"].(map[string]interface{})["token"].(string)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
