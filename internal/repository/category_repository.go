package repository

import (
	"coursehub_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("name = ?", name).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name").Find(&categories).Error
	return categories, err
}
