package repositories

import (
	"testing"

	"campus-hub/agora/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.Account{},
		&entities.Project{},
		&entities.ScheduledEvent{},
		&entities.CommunityEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
