package repository

import (
	"coursehub_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// FeedbackWithAuthor 反馈连带作者显示名
type FeedbackWithAuthor struct {
	ID        uint      `json:"id"`
	CourseID  uint      `json:"courseId"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Upsert 依赖 (course_id, user_id) 唯一索引做原子插入或覆盖
func (r *FeedbackRepository) Upsert(feedback *model.Feedback) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(feedback).Error
}

func (r *FeedbackRepository) FindWithAuthor(courseID, userID uint) (*FeedbackWithAuthor, error) {
	var row FeedbackWithAuthor
	err := r.DB.Model(&model.Feedback{}).
		Select("course_feedback.id, course_feedback.course_id, course_feedback.user_id, users.name AS user_name, course_feedback.rating, course_feedback.comment, course_feedback.created_at").
		Joins("JOIN users ON users.id = course_feedback.user_id").
		Where("course_feedback.course_id = ? AND course_feedback.user_id = ?", courseID, userID).
		First(&row).Error
	return &row, err
}

// ListByCourse 最新的在前
func (r *FeedbackRepository) ListByCourse(courseID uint) ([]FeedbackWithAuthor, error) {
	rows := make([]FeedbackWithAuthor, 0)
	err := r.DB.Model(&model.Feedback{}).
		Select("course_feedback.id, course_feedback.course_id, course_feedback.user_id, users.name AS user_name, course_feedback.rating, course_feedback.comment, course_feedback.created_at").
		Joins("JOIN users ON users.id = course_feedback.user_id").
		Where("course_feedback.course_id = ?", courseID).
		Order("course_feedback.created_at DESC, course_feedback.id DESC").
		Scan(&rows).Error
	return rows, err
}
