package services

import (
	"fmt"
	"testing"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps config.DB for an in-memory sqlite database scoped
// to the calling test and restores the previous handle on cleanup.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.MealItem{},
		&models.RecommendedMenu{},
		&models.RecommendedMeal{},
		&models.RecommendedIngredient{},
		&models.MealCompletion{},
		&models.UserGamification{},
		&models.BadgeAward{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}
