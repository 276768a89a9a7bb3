package model

import "time"

// Enrollment (course_id, user_id) 唯一，存在即已选课
// swagger:model Enrollment
type Enrollment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_course_user_enroll" json:"courseId"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_course_user_enroll" json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "course_enrollments"
}
