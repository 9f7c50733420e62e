package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devvy-server/internal/config"
	"devvy-server/internal/model"
	"devvy-server/internal/repository"
	"devvy-server/internal/service"
)

// testEnv 一套完整的业务层测试环境
// 数据库用内存 SQLite，生成器用固定回复，不依赖外部服务
type testEnv struct {
	db         *gorm.DB
	chat       *service.ChatService
	sessions   *service.SessionService
	categories *service.CategoryService
	feedback   *service.FeedbackService
	messages   *repository.MessageRepository
	chatCfg    config.ChatConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Session{},
		&model.Message{},
		&model.Feedback{},
	))

	categoryRepo := repository.NewCategoryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	require.NoError(t, categoryRepo.Seed(context.Background(), service.DefaultCategories()))

	chatCfg := config.ChatConfig{
		DefaultUserID:    "devvy-user-01",
		MaxQueryLength:   1000,
		MaxCommentLength: 1000,
	}

	categories := service.NewCategoryService(categoryRepo, nil)
	sessions := service.NewSessionService(sessionRepo, messageRepo)
	chat := service.NewChatService(db, sessions, messageRepo, categories, service.NewStaticGenerator(), chatCfg)
	feedback := service.NewFeedbackService(feedbackRepo, chatCfg)

	return &testEnv{
		db:         db,
		chat:       chat,
		sessions:   sessions,
		categories: categories,
		feedback:   feedback,
		messages:   messageRepo,
		chatCfg:    chatCfg,
	}
}

// countRows 统计表的行数
func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(value).Count(&count).Error)
	return count
}
