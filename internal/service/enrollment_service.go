package service

import (
	"errors"
	"time"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"

	"gorm.io/gorm"
)

// EnrollmentService 每个 (course, user) 至多一条选课记录
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
	}
}

// Enroll 重复选课是业务错误而非系统错误
func (s *EnrollmentService) Enroll(courseID, userID uint) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	exists, err := s.EnrollmentRepo.Exists(courseID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		UserID:     userID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListUserEnrollments(userID uint) ([]repository.EnrolledCourse, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}
