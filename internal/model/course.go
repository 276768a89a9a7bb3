package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	InstructorID uint      `gorm:"not null;index" json:"instructorId"`
	CategoryID   *uint     `gorm:"index" json:"categoryId"`
	Published    bool      `gorm:"default:true" json:"published"`
	CoverImage   string    `gorm:"size:500" json:"coverImage"`
	Instructor   *User     `gorm:"foreignKey:InstructorID" json:"-"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"-"`

	// 课程删除时级联删除章节
	Sections []CourseSection `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseSection 课程章节，order_index 为 1 起始的连续序号，整表替换时重新生成
// swagger:model CourseSection
type CourseSection struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    uint   `gorm:"not null;index" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"text"`
	OrderIndex  int    `gorm:"not null" json:"orderIndex"`
}

func (CourseSection) TableName() string {
	return "course_sections"
}
