package model

import "time"

// Feedback 每个 (course, user) 至多一条，重复提交走 upsert 覆盖评分和评论，
// 唯一索引兜底并发下的首次双写。
// swagger:model Feedback
type Feedback struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_course_user_feedback" json:"courseId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_course_user_feedback" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Feedback) TableName() string {
	return "course_feedback"
}
