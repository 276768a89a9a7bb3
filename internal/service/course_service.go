package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"coursehub_backend/internal/model"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/util"
	"coursehub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publishedCoursesCacheKey = "courses:published"
	publishedCoursesCacheTTL = time.Minute
)

// CourseService 课程及其章节的读写。多表写入都走事务，保证课程与章节要么全部落库要么全部回滚。
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	SectionRepo    *repository.SectionRepository
	ContentRepo    *repository.ContentItemRepository
	UserRepo       *repository.UserRepository
	CategoryRepo   *repository.CategoryRepository
	EnrollmentRepo *repository.EnrollmentRepository
	FeedbackRepo   *repository.FeedbackRepository
	DB             *gorm.DB
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	sectionRepo *repository.SectionRepository,
	contentRepo *repository.ContentItemRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	feedbackRepo *repository.FeedbackRepository,
	db *gorm.DB,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		SectionRepo:    sectionRepo,
		ContentRepo:    contentRepo,
		UserRepo:       userRepo,
		CategoryRepo:   categoryRepo,
		EnrollmentRepo: enrollmentRepo,
		FeedbackRepo:   feedbackRepo,
		DB:             db,
		Redis:          rdb,
	}
}

// SectionInput 创建/更新课程时提交的章节条目，顺序即展示顺序
type SectionInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CourseCreateRequest 创建课程请求。讲师优先用 instructorId 指定，
// 显示名仅作为迁移期的兜底，重名直接报错。
type CourseCreateRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	InstructorID uint           `json:"instructorId"`
	Instructor   string         `json:"instructor"`
	Category     string         `json:"category"`
	CoverImage   string         `json:"coverImage"`
	Content      []SectionInput `json:"content"`
}

// CourseUpdateRequest 部分更新：缺省字段不动，content 一旦出现就整表替换
type CourseUpdateRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	InstructorID *uint           `json:"instructorId"`
	Instructor   *string         `json:"instructor"`
	Category     *string         `json:"category"`
	CoverImage   *string         `json:"coverImage"`
	Content      *[]SectionInput `json:"content"`
}

// SectionDetail 课程详情里的章节，含其下的内容条目
type SectionDetail struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Text       string              `json:"text"`
	OrderIndex int                 `json:"orderIndex"`
	Files      []model.ContentItem `json:"files"`
}

// CourseDetail 课程详情响应
type CourseDetail struct {
	ID           uint                            `json:"id"`
	Title        string                          `json:"title"`
	Description  string                          `json:"description"`
	InstructorID uint                            `json:"instructorId"`
	Instructor   string                          `json:"instructor"`
	Category     string                          `json:"category"`
	CoverImage   string                          `json:"cover_image"`
	Published    bool                            `json:"published"`
	Content      []SectionDetail                 `json:"content"`
	Feedback     []repository.FeedbackWithAuthor `json:"feedback"`
	IsEnrolled   *bool                           `json:"isEnrolled,omitempty"`
}

// resolveInstructor 解析讲师：显式 ID 优先，否则按显示名查找，重名报错
func (s *CourseService) resolveInstructor(instructorID uint, name string) (*model.User, error) {
	if instructorID != 0 {
		user, err := s.UserRepo.FindByID(instructorID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInstructorNotFound
		}
		return user, err
	}

	users, err := s.UserRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, util.ErrInstructorNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, util.ErrInstructorAmbiguous
	}
}

// resolveCategory 按名称解析分类，查不到不算错误（category_id 置空）
func (s *CourseService) resolveCategory(name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	category, err := s.CategoryRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// CreateCourse 创建课程与章节列表，事务内写入，任一步失败整体回滚
func (s *CourseService) CreateCourse(req CourseCreateRequest) (*CourseDetail, error) {
	if req.Title == "" || req.Description == "" || (req.InstructorID == 0 && req.Instructor == "") {
		return nil, util.ErrMissingCourseFields
	}

	instructor, err := s.resolveInstructor(req.InstructorID, req.Instructor)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructor.ID,
		CategoryID:   categoryID,
		Published:    true,
		CoverImage:   req.CoverImage,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		for i, entry := range req.Content {
			section := &model.CourseSection{
				CourseID:    course.ID,
				Title:       entry.Title,
				Description: entry.Text,
				OrderIndex:  i + 1,
			}
			if err := tx.Create(section).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache()

	// 回读已提交的课程行，content 直接回显提交内容
	committed, err := s.CourseRepo.FindWithNames(course.ID)
	if err != nil {
		return nil, err
	}

	detail := s.shapeCourse(committed)
	detail.Content = make([]SectionDetail, 0, len(req.Content))
	for i, entry := range req.Content {
		detail.Content = append(detail.Content, SectionDetail{
			Title:      entry.Title,
			Text:       entry.Text,
			OrderIndex: i + 1,
			Files:      make([]model.ContentItem, 0),
		})
	}
	return detail, nil
}

// UpdateCourse 增量更新标量字段；content 出现时删除旧章节并以新的 1 起始序号整表重建
func (s *CourseService) UpdateCourse(id uint, req CourseUpdateRequest) (*CourseDetail, error) {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.InstructorID != nil || req.Instructor != nil {
		var instructorID uint
		var name string
		if req.InstructorID != nil {
			instructorID = *req.InstructorID
		}
		if req.Instructor != nil {
			name = *req.Instructor
		}
		instructor, err := s.resolveInstructor(instructorID, name)
		if err != nil {
			return nil, err
		}
		updates["instructor_id"] = instructor.ID
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.Course{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Content != nil {
			if err := tx.Where("course_id = ?", id).Delete(&model.CourseSection{}).Error; err != nil {
				return err
			}
			for i, entry := range *req.Content {
				section := &model.CourseSection{
					CourseID:    id,
					Title:       entry.Title,
					Description: entry.Text,
					OrderIndex:  i + 1,
				}
				if err := tx.Create(section).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return s.GetCourse(id, 0)
}

// DeleteCourse 删除课程并在同一事务里清掉章节、内容、选课与反馈
func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&model.CourseSection{}).Where("course_id = ?", id).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&model.ContentItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseSection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
	if err != nil {
		return err
	}

	s.invalidateListCache()
	return nil
}

// GetCourse 课程详情：有序章节及其内容条目、反馈列表；userID 非零时计算 isEnrolled
func (s *CourseService) GetCourse(id uint, userID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindWithNames(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	sections, err := s.SectionRepo.ListByCourse(id)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]uint, 0, len(sections))
	for _, section := range sections {
		sectionIDs = append(sectionIDs, section.ID)
	}
	items, err := s.ContentRepo.ListBySections(sectionIDs)
	if err != nil {
		return nil, err
	}
	itemsBySection := make(map[uint][]model.ContentItem, len(sections))
	for _, item := range items {
		itemsBySection[item.SectionID] = append(itemsBySection[item.SectionID], item)
	}

	feedback, err := s.FeedbackRepo.ListByCourse(id)
	if err != nil {
		return nil, err
	}

	detail := s.shapeCourse(course)
	detail.Feedback = feedback
	detail.Content = make([]SectionDetail, 0, len(sections))
	for _, section := range sections {
		files := itemsBySection[section.ID]
		if files == nil {
			files = make([]model.ContentItem, 0)
		}
		detail.Content = append(detail.Content, SectionDetail{
			ID:         section.ID,
			Title:      section.Title,
			Text:       section.Description,
			OrderIndex: section.OrderIndex,
			Files:      files,
		})
	}

	if userID != 0 {
		enrolled, err := s.EnrollmentRepo.Exists(id, userID)
		if err != nil {
			return nil, err
		}
		detail.IsEnrolled = &enrolled
	}

	return detail, nil
}

// ListPublished 已发布课程的扁平列表，Redis 缓存一分钟，写操作时失效
func (s *CourseService) ListPublished() ([]repository.CourseSummary, error) {
	ctx := context.Background()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, publishedCoursesCacheKey).Result()
		if err == nil {
			var rows []repository.CourseSummary
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.Redis.Set(ctx, publishedCoursesCacheKey, payload, publishedCoursesCacheTTL).Err(); err != nil {
				logger.Log.Warn("course list cache write failed", zap.Error(err))
			}
		}
	}

	return rows, nil
}

// SetPublished 上架/下架
func (s *CourseService) SetPublished(id uint, published bool) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(course).Update("published", published).Error; err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return course, nil
}

func (s *CourseService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CourseService) shapeCourse(course *model.Course) *CourseDetail {
	detail := &CourseDetail{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		InstructorID: course.InstructorID,
		CoverImage:   course.CoverImage,
		Published:    course.Published,
		Content:      make([]SectionDetail, 0),
		Feedback:     make([]repository.FeedbackWithAuthor, 0),
	}
	if course.Instructor != nil {
		detail.Instructor = course.Instructor.Name
	}
	if course.Category != nil {
		detail.Category = course.Category.Name
	}
	return detail
}

func (s *CourseService) invalidateListCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), publishedCoursesCacheKey).Err(); err != nil {
		logger.Log.Warn("course list cache invalidation failed", zap.Error(err))
	}
}
