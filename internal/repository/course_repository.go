package repository

import (
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseSummary 课程列表的扁平行：讲师/分类直接展开为名称
type CourseSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
	Category    string `json:"category"`
	CoverImage  string `json:"cover_image"`
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindWithNames 读取课程并连带讲师与分类名称
func (r *CourseRepository) FindWithNames(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").Preload("Category").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) ListPublished() ([]CourseSummary, error) {
	var rows []CourseSummary
	err := r.DB.Model(&model.Course{}).
		Select("courses.id, courses.title, courses.description, users.name AS instructor, categories.name AS category, courses.cover_image").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Joins("LEFT JOIN categories ON categories.id = courses.category_id").
		Where("courses.published = ?", true).
		Order("courses.id").
		Scan(&rows).Error
	return rows, err
}
