package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"devvy-server/internal/model"
	"devvy-server/internal/service"
)

func TestProcessChatTurnCreatesNewSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "로그인 실패 문의",
	})
	require.NoError(t, err)
	require.Len(t, result.SessionID, 32)
	require.NotEmpty(t, result.Response)
	require.False(t, result.Timestamp.IsZero())

	// 一轮对话写入 USER + AI 两条消息，顺序固定
	messages, err := env.sessions.GetSessionMessages(ctx, "devvy-user-01", result.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, model.MessageTypeUser, messages[0].MessageType)
	require.Equal(t, model.MessageTypeAI, messages[1].MessageType)
	// 用户消息原样存取
	require.Equal(t, "로그인 실패 문의", messages[0].Content)
	require.Equal(t, result.Response, messages[1].Content)

	// 会话元数据同步更新
	history, err := env.sessions.GetChatHistory(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, result.SessionID, history[0].SessionID)
	require.Equal(t, 2, history[0].MessageCount)
	require.Equal(t, "voc", history[0].CategoryCode)
	require.Equal(t, "로그인 실패 문의", history[0].FirstMessage)
}

func TestProcessChatTurnContinuesSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "project",
		UserQuery:    "프로젝트 진행률 알려줘",
	})
	require.NoError(t, err)

	// 同一会话每轮计数加 2
	for i := 0; i < 3; i++ {
		next, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
			CategoryCode: "project",
			UserQuery:    "계속 알려줘",
			SessionID:    first.SessionID,
		})
		require.NoError(t, err)
		require.Equal(t, first.SessionID, next.SessionID)
	}

	history, err := env.sessions.GetChatHistory(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, 8, history[0].MessageCount)

	messages, err := env.sessions.GetSessionMessages(ctx, "devvy-user-01", first.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 8)
}

func TestProcessChatTurnValidationRejectsBeforePersistence(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	cases := []struct {
		name    string
		req     *service.ChatRequest
		wantErr error
	}{
		{
			name:    "missing category",
			req:     &service.ChatRequest{UserQuery: "질문"},
			wantErr: service.ErrCategoryRequired,
		},
		{
			name:    "unknown category",
			req:     &service.ChatRequest{CategoryCode: "unknown_cat", UserQuery: "질문"},
			wantErr: service.ErrCategoryNotFound,
		},
		{
			name:    "blank query",
			req:     &service.ChatRequest{CategoryCode: "voc", UserQuery: "   "},
			wantErr: service.ErrQueryRequired,
		},
		{
			name: "query too long",
			// 1001 个多字节字符，长度按字符而不是字节计数
			req:     &service.ChatRequest{CategoryCode: "voc", UserQuery: strings.Repeat("가", 1001)},
			wantErr: service.ErrQueryTooLong,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			require.True(t, service.IsValidationError(err))
		})
	}

	// 校验失败不留下任何数据
	require.EqualValues(t, 0, countRows(t, env.db, &model.Session{}))
	require.EqualValues(t, 0, countRows(t, env.db, &model.Message{}))
}

func TestProcessChatTurnQueryAtLimitAccepted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// 恰好 1000 字符的提问在边界之内
	result, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    strings.Repeat("가", 1000),
	})
	require.NoError(t, err)
	require.Len(t, result.SessionID, 32)
}

func TestProcessChatTurnCrossUserDenied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.chat.ProcessChatTurn(ctx, "user-a", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "문의합니다",
	})
	require.NoError(t, err)

	// 其他用户续接会话：拒绝访问而不是不存在
	_, err = env.chat.ProcessChatTurn(ctx, "user-b", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "이어서 질문",
		SessionID:    result.SessionID,
	})
	require.ErrorIs(t, err, service.ErrNoPermission)

	// 不存在的会话
	_, err = env.chat.ProcessChatTurn(ctx, "user-a", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "이어서 질문",
		SessionID:    "ffffffffffffffffffffffffffffffff",
	})
	require.ErrorIs(t, err, service.ErrSessionNotFound)

	// 失败的请求不产生新消息
	messages, err := env.sessions.GetSessionMessages(ctx, "user-a", result.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
}

func TestProcessChatTurnConcurrentTurnsKeepCountConsistent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "첫 질문",
	})
	require.NoError(t, err)

	// 同一会话的并发轮次，计数器靠存储层的原子自增不丢失更新
	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
				CategoryCode: "voc",
				UserQuery:    "동시 질문",
				SessionID:    first.SessionID,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	history, err := env.sessions.GetChatHistory(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, 2+2*workers, history[0].MessageCount)

	messages, err := env.sessions.GetSessionMessages(ctx, "devvy-user-01", first.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2+2*workers)
}

func TestProcessChatTurnStorageFailureIsNotValidationError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// 存储故障不能伪装成分类不存在的参数错误
	_, err = env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "질문",
	})
	require.Error(t, err)
	require.False(t, service.IsValidationError(err))
}

func TestProcessChatTurnDistinctSessionsPerRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// 不带 sessionId 的两次请求各自创建会话，这是约定行为
	first, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "첫 번째 질문",
	})
	require.NoError(t, err)

	second, err := env.chat.ProcessChatTurn(ctx, "devvy-user-01", &service.ChatRequest{
		CategoryCode: "voc",
		UserQuery:    "두 번째 질문",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.SessionID, second.SessionID)
}

func TestStaticGeneratorDispatch(t *testing.T) {
	g := service.NewStaticGenerator()
	ctx := context.Background()

	for _, code := range []string{"swdp_menu", "project", "voc", "project_info", "swdp_api"} {
		require.NotEmpty(t, g.Generate(ctx, code, "질문"))
	}

	// 未知分类返回兜底文案，不失败
	unknown := g.Generate(ctx, "unknown_cat", "질문")
	require.NotEmpty(t, unknown)
	require.Contains(t, unknown, "카테고리")
}
