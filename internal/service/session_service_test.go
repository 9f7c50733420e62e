package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"devvy-server/internal/service"
)

func TestResolveSessionCreatesWhenEmpty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	session, err := env.sessions.ResolveSession(ctx, "devvy-user-01", "voc", "", "로그인 실패 문의")
	require.NoError(t, err)
	require.Len(t, session.SessionID, 32)
	require.Equal(t, 0, session.MessageCount)
	require.Equal(t, "로그인 실패 문의", session.FirstMessage)

	// 带上刚创建的 ID 时返回同一个会话，不创建新行
	again, err := env.sessions.ResolveSession(ctx, "devvy-user-01", "voc", session.SessionID, "무시됨")
	require.NoError(t, err)
	require.Equal(t, session.SessionID, again.SessionID)

	history, err := env.sessions.GetChatHistory(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestResolveSessionTruncatesFirstMessage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	long := strings.Repeat("가", 600)
	session, err := env.sessions.ResolveSession(ctx, "devvy-user-01", "voc", "", long)
	require.NoError(t, err)
	// FirstMessage 按字符截断到 500
	require.Equal(t, 500, len([]rune(session.FirstMessage)))
}

func TestResolveSessionOwnership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	session, err := env.sessions.ResolveSession(ctx, "user-a", "voc", "", "질문")
	require.NoError(t, err)

	_, err = env.sessions.ResolveSession(ctx, "user-b", "voc", session.SessionID, "")
	require.ErrorIs(t, err, service.ErrNoPermission)

	_, err = env.sessions.ResolveSession(ctx, "user-a", "voc", "ffffffffffffffffffffffffffffffff", "")
	require.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestGetSessionMessagesCrossUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.chat.ProcessChatTurn(ctx, "user-a", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "문의합니다",
	})
	require.NoError(t, err)

	// 跨用户查询返回权限错误而不是不存在
	_, err = env.sessions.GetSessionMessages(ctx, "user-b", result.SessionID)
	require.ErrorIs(t, err, service.ErrNoPermission)

	_, err = env.sessions.GetSessionMessages(ctx, "user-a", "ffffffffffffffffffffffffffffffff")
	require.ErrorIs(t, err, service.ErrSessionNotFound)
}
