package repository

import (
	"coursehub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// EnrolledCourse 用户已选课程的扁平行
type EnrolledCourse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Category    string    `json:"category"`
	CoverImage  string    `json:"cover_image"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Exists(courseID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]EnrolledCourse, error) {
	rows := make([]EnrolledCourse, 0)
	err := r.DB.Model(&model.Enrollment{}).
		Select("courses.id, courses.title, courses.description, users.name AS instructor, categories.name AS category, courses.cover_image, course_enrollments.enrolled_at").
		Joins("JOIN courses ON courses.id = course_enrollments.course_id AND courses.deleted_at IS NULL").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Joins("LEFT JOIN categories ON categories.id = courses.category_id").
		Where("course_enrollments.user_id = ?", userID).
		Order("course_enrollments.enrolled_at DESC").
		Scan(&rows).Error
	return rows, err
}
