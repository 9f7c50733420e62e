package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"devvy-server/internal/model"
	"devvy-server/internal/repository"
	"devvy-server/pkg/util"
)

func seedCategories() []model.Category {
	return []model.Category{
		{Code: "voc", Name: "VOC", SortOrder: 2, IsActive: true},
		{Code: "project", Name: "프로젝트", SortOrder: 1, IsActive: true},
		{Code: "legacy", Name: "구버전", SortOrder: 3, IsActive: false},
	}
}

func TestCategoryRepositoryListActive(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCategoryRepository(newTestDB(t))
	require.NoError(t, repo.Seed(ctx, seedCategories()))

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	// 停用的分类不返回，按 sort_order 排序
	require.Len(t, categories, 2)
	require.Equal(t, "project", categories[0].Code)
	require.Equal(t, "voc", categories[1].Code)
}

func TestCategoryRepositoryGetByCode(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCategoryRepository(newTestDB(t))
	require.NoError(t, repo.Seed(ctx, seedCategories()))

	got, err := repo.GetByCode(ctx, "voc")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "VOC", got.Name)

	// 停用的分类视同不存在
	got, err = repo.GetByCode(ctx, "legacy")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.GetByCode(ctx, "unknown_cat")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCategoryRepositorySeedDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCategoryRepository(newTestDB(t))
	require.NoError(t, repo.Seed(ctx, seedCategories()))

	// 线上修改过的提示词不能被重复的种子写入覆盖
	rows, err := repo.UpdateSystemPrompt(ctx, "voc", "수정된 프롬프트")
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	require.NoError(t, repo.Seed(ctx, seedCategories()))

	got, err := repo.GetByCode(ctx, "voc")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.SystemPrompt)
	require.Equal(t, "수정된 프롬프트", *got.SystemPrompt)
}

func TestCategoryRepositoryUpdateSystemPromptMissing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCategoryRepository(newTestDB(t))
	require.NoError(t, repo.Seed(ctx, seedCategories()))

	rows, err := repo.UpdateSystemPrompt(ctx, "unknown_cat", "프롬프트")
	require.NoError(t, err)
	require.EqualValues(t, 0, rows)
}

func TestFeedbackRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewFeedbackRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &model.Feedback{
		UserID:  "devvy-user-01",
		Rating:  5,
		Comment: util.StringPtr("도움이 되었습니다."),
	}))

	count, err := repo.CountByUserID(ctx, "devvy-user-01")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
