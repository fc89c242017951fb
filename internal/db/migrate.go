package db

import (
	"errors"

	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Shop{},
		&model.Review{},
		&model.ReviewKeyword{},
		&model.Tag{},
		&model.UserTag{},
		&model.ShopTag{},
		&model.OrderRecord{},
		&model.AICallLog{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(DB); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData(DB)
}

// seedInitialData 취향 추론에 쓰는 기본 태그를 미리 넣어 둔다.
// 이미 존재하는 태그는 건너뛴다.
func seedInitialData(db *gorm.DB) error {
	defaultTags := []struct {
		name  string
		scope model.TagScope
	}{
		{"spicy", model.TagScopeUser},
		{"sweet", model.TagScopeUser},
		{"value", model.TagScopeUser},
		{"clean", model.TagScopeUser},
		{"service", model.TagScopeUser},
		{"spicy", model.TagScopeShop},
		{"fresh", model.TagScopeShop},
		{"hygienic", model.TagScopeShop},
		{"friendly", model.TagScopeShop},
		{"cheap", model.TagScopeShop},
		{"portion", model.TagScopeShop},
	}

	created := 0
	for _, t := range defaultTags {
		var existing model.Tag
		err := db.Where("name = ? AND scope = ?", t.name, t.scope).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&model.Tag{Name: t.name, Scope: t.scope}).Error; err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("Seeded default tags", map[string]interface{}{
			"created": created,
		})
	}
	return nil
}
