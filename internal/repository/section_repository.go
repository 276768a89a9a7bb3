package repository

import (
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) FindByID(id uint) (*model.CourseSection, error) {
	var section model.CourseSection
	err := r.DB.First(&section, id).Error
	return &section, err
}

// ListByCourse 按 order_index 返回课程的章节
func (r *SectionRepository) ListByCourse(courseID uint) ([]model.CourseSection, error) {
	var sections []model.CourseSection
	err := r.DB.Where("course_id = ?", courseID).Order("order_index").Find(&sections).Error
	return sections, err
}
