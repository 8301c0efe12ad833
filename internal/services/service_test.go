package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/repos"
	"github.com/conceptpulse/conceptpulse-backend/internal/types"
)

// newTestDB opens a per-test in-memory sqlite database with the same gorm
// config the real service uses, so duplicate-key translation behaves the same.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A pooled second connection would see its own empty memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Topic{},
		&types.Attempt{},
		&types.Mastery{},
		&types.RevisionSchedule{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func createTestTopic(t *testing.T, db *gorm.DB, log *logger.Logger, name string) *types.Topic {
	t.Helper()
	topic := &types.Topic{ID: uuid.New(), Name: name, Subject: "math"}
	if err := repos.NewTopicRepo(db, log).Create(context.Background(), nil, topic); err != nil {
		t.Fatalf("create topic %q: %v", name, err)
	}
	return topic
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
