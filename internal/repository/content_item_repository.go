package repository

import (
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type ContentItemRepository struct {
	DB *gorm.DB
}

func NewContentItemRepository(db *gorm.DB) *ContentItemRepository {
	return &ContentItemRepository{DB: db}
}

func (r *ContentItemRepository) Create(item *model.ContentItem) error {
	return r.DB.Create(item).Error
}

func (r *ContentItemRepository) ListBySection(sectionID uint) ([]model.ContentItem, error) {
	items := make([]model.ContentItem, 0)
	err := r.DB.Where("section_id = ?", sectionID).Order("id").Find(&items).Error
	return items, err
}

func (r *ContentItemRepository) ListBySections(sectionIDs []uint) ([]model.ContentItem, error) {
	items := make([]model.ContentItem, 0)
	if len(sectionIDs) == 0 {
		return items, nil
	}
	err := r.DB.Where("section_id IN ?", sectionIDs).Order("id").Find(&items).Error
	return items, err
}
