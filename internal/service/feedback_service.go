// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"devvy-server/internal/config"
	"devvy-server/internal/model"
	"devvy-server/internal/repository"
)

// 反馈校验相关错误
var (
	ErrRatingOutOfRange = errors.New("평점은 1-5 사이 값이어야 합니다.")
	ErrCommentTooLong   = errors.New("피드백은 1000자를 초과할 수 없습니다.")
)

// FeedbackRequest 反馈请求
type FeedbackRequest struct {
	Rating           int     `json:"rating"`                     // 评分，1-5，必填
	FeedbackCategory *string `json:"feedbackCategory,omitempty"` // 反馈分类，可选
	Comment          *string `json:"comment,omitempty"`          // 反馈内容，可选
}

// FeedbackService 反馈服务
// 反馈只追加不修改，不强制关联某个会话
type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository // 反馈数据访问层
	chatCfg      config.ChatConfig              // 长度限制配置
}

// NewFeedbackService 创建 FeedbackService 实例
func NewFeedbackService(feedbackRepo *repository.FeedbackRepository, chatCfg config.ChatConfig) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		chatCfg:      chatCfg,
	}
}

// SaveFeedback 保存用户反馈
// 校验失败时不写入任何数据
func (s *FeedbackService) SaveFeedback(ctx context.Context, userID string, req *FeedbackRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > s.chatCfg.MaxCommentLength {
		return ErrCommentTooLong
	}

	feedback := &model.Feedback{
		UserID: userID,
		Rating: req.Rating,
	}
	if req.FeedbackCategory != nil && strings.TrimSpace(*req.FeedbackCategory) != "" {
		feedback.FeedbackCategory = req.FeedbackCategory
	}
	if req.Comment != nil && strings.TrimSpace(*req.Comment) != "" {
		feedback.Comment = req.Comment
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		log.Printf("[ERROR] feedback persistence failed: user=%s err=%v", userID, err)
		return err
	}

	log.Printf("[INFO] feedback saved: user=%s rating=%d", userID, req.Rating)
	return nil
}
