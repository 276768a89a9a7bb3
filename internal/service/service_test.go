package service

import (
	"testing"
	"time"

	"coursehub_backend/internal/config"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个内存库；单连接保证 :memory: 不会分裂成多个库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewSectionRepository(db),
		repository.NewContentItemRepository(db),
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewFeedbackRepository(db),
		db,
		nil,
	)
}

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func newFeedbackService(db *gorm.DB) *FeedbackService {
	return NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
	)
}

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
	)
}

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewContentItemRepository(db),
		repository.NewSectionRepository(db),
		repository.NewCourseRepository(db),
	)
}
