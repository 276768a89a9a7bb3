package service

import (
	"errors"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"

	"gorm.io/gorm"
)

// FeedbackService 星级反馈，(course, user) 唯一，重复提交覆盖
type FeedbackService struct {
	FeedbackRepo *repository.FeedbackRepository
	CourseRepo   *repository.CourseRepository
	UserRepo     *repository.UserRepository
}

func NewFeedbackService(
	feedbackRepo *repository.FeedbackRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
) *FeedbackService {
	return &FeedbackService{
		FeedbackRepo: feedbackRepo,
		CourseRepo:   courseRepo,
		UserRepo:     userRepo,
	}
}

type FeedbackRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Submit 原子 upsert，随后回读连带作者显示名的行
func (s *FeedbackService) Submit(courseID uint, req FeedbackRequest) (*repository.FeedbackWithAuthor, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.UserRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	feedback := &model.Feedback{
		CourseID: courseID,
		UserID:   req.UserID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.FeedbackRepo.Upsert(feedback); err != nil {
		return nil, err
	}

	return s.FeedbackRepo.FindWithAuthor(courseID, req.UserID)
}

// ListCourseFeedback 最新的在前
func (s *FeedbackService) ListCourseFeedback(courseID uint) ([]repository.FeedbackWithAuthor, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.FeedbackRepo.ListByCourse(courseID)
}
