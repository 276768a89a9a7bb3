package model

import "time"

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentDocument ContentType = "document"
)

// ContentItem 章节下的内容条目（视频/文档），URL 仅作为不透明字符串存储
// swagger:model ContentItem
type ContentItem struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	SectionID   uint        `gorm:"not null;index" json:"sectionId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Type        ContentType `gorm:"size:20;not null" json:"type"`
	URL         string      `gorm:"size:500;not null" json:"url"`
	Description string      `gorm:"type:text" json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (ContentItem) TableName() string {
	return "course_content"
}
