package service

import (
	"errors"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 章节下的内容条目。URL 是外部资源的不透明字符串，不做上传和存储。
type ContentService struct {
	ContentRepo *repository.ContentItemRepository
	SectionRepo *repository.SectionRepository
	CourseRepo  *repository.CourseRepository
}

func NewContentService(
	contentRepo *repository.ContentItemRepository,
	sectionRepo *repository.SectionRepository,
	courseRepo *repository.CourseRepository,
) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		SectionRepo: sectionRepo,
		CourseRepo:  courseRepo,
	}
}

type ContentItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=video document"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
	SectionID   uint   `json:"sectionId" binding:"required"`
}

// AddContentItem 向课程的某个章节添加内容条目，章节必须属于该课程
func (s *ContentService) AddContentItem(courseID uint, req ContentItemRequest) (*model.ContentItem, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	section, err := s.SectionRepo.FindByID(req.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}
	if section.CourseID != courseID {
		return nil, util.ErrSectionNotFound
	}

	item := &model.ContentItem{
		SectionID:   section.ID,
		Title:       req.Title,
		Type:        model.ContentType(req.Type),
		URL:         req.URL,
		Description: req.Description,
	}
	if err := s.ContentRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListSectionContent 章节不存在时同样返回空列表
func (s *ContentService) ListSectionContent(sectionID uint) ([]model.ContentItem, error) {
	return s.ContentRepo.ListBySection(sectionID)
}
