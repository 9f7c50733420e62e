package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devvy-server/internal/model"
	"devvy-server/internal/repository"
)

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository(newTestDB(t))

	now := time.Now()
	session := &model.Session{
		SessionID:     "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		UserID:        "devvy-user-01",
		CategoryCode:  "voc",
		FirstMessage:  "로그인 실패 문의",
		CreatedAt:     now,
		LastMessageAt: now,
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "devvy-user-01", got.UserID)
	require.Equal(t, "voc", got.CategoryCode)
	require.Equal(t, "로그인 실패 문의", got.FirstMessage)
	require.Equal(t, 0, got.MessageCount)
}

func TestSessionRepositoryGetByIDMissing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository(newTestDB(t))

	got, err := repo.GetByID(ctx, "ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSessionRepositoryRecordTurn(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository(newTestDB(t))

	before := time.Now().Add(-time.Hour)
	session := &model.Session{
		SessionID:     "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		UserID:        "devvy-user-01",
		CategoryCode:  "project",
		CreatedAt:     before,
		LastMessageAt: before,
	}
	require.NoError(t, repo.Create(ctx, session))

	// 每轮对话计数加 2，增量叠加
	require.NoError(t, repo.RecordTurn(ctx, session.SessionID))
	require.NoError(t, repo.RecordTurn(ctx, session.SessionID))

	got, err := repo.GetByID(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 4, got.MessageCount)
	require.True(t, got.LastMessageAt.After(before))
}

func TestSessionRepositoryGetByUserIDOrdersByLastMessage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository(newTestDB(t))

	old := &model.Session{
		SessionID:     "00000000000000000000000000000001",
		UserID:        "devvy-user-01",
		CategoryCode:  "voc",
		LastMessageAt: time.Now().Add(-time.Hour),
	}
	recent := &model.Session{
		SessionID:     "00000000000000000000000000000002",
		UserID:        "devvy-user-01",
		CategoryCode:  "project",
		LastMessageAt: time.Now(),
	}
	other := &model.Session{
		SessionID:     "00000000000000000000000000000003",
		UserID:        "someone-else",
		CategoryCode:  "voc",
		LastMessageAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))
	require.NoError(t, repo.Create(ctx, other))

	sessions, err := repo.GetByUserID(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, recent.SessionID, sessions[0].SessionID)
	require.Equal(t, old.SessionID, sessions[1].SessionID)

	count, err := repo.CountByUserID(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}
