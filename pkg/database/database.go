package database

import (
	"fmt"
	"log"

	"coursehub_backend/internal/config"
	"coursehub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表并写入缺省分类。内容表也在这里建出来，不做运行时 DDL。
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.CourseSection{},
		&model.ContentItem{},
		&model.Enrollment{},
		&model.Feedback{},
	)
	if err != nil {
		return err
	}

	// 缺省分类
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []string{
			"Programming",
			"Design",
			"Business",
			"Marketing",
			"Data Science",
		}
		for _, name := range defaultCategories {
			db.Create(&model.Category{Name: name})
		}
	}

	return nil
}
