package service

import (
	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/repository"
)

// CounterService 计数对账服务
// 从事实行重算冗余计数，幂等可重复执行。
type CounterService struct {
	counterRepo repository.CounterRepository
}

// NewCounterService 创建计数对账服务
func NewCounterService(counterRepo repository.CounterRepository) *CounterService {
	return &CounterService{counterRepo: counterRepo}
}

// ReconcileResult 对账结果
type ReconcileResult struct {
	PostRepliesFixed int64 `json:"post_replies_fixed"`
	PostLikesFixed   int64 `json:"post_likes_fixed"`
	ReplyLikesFixed  int64 `json:"reply_likes_fixed"`
}

// Reconcile 执行一轮计数对账，返回各项被修正的行数
func (s *CounterService) Reconcile() (*ReconcileResult, error) {
	result := &ReconcileResult{}

	fixed, err := s.counterRepo.ReconcilePostRepliesCount()
	if err != nil {
		return nil, err
	}
	result.PostRepliesFixed = fixed

	fixed, err = s.counterRepo.ReconcilePostLikesCount()
	if err != nil {
		return nil, err
	}
	result.PostLikesFixed = fixed

	fixed, err = s.counterRepo.ReconcileReplyLikesCount()
	if err != nil {
		return nil, err
	}
	result.ReplyLikesFixed = fixed

	if result.PostRepliesFixed > 0 || result.PostLikesFixed > 0 || result.ReplyLikesFixed > 0 {
		logger.Warnw("counter_reconcile_drift_fixed",
			"post_replies_fixed", result.PostRepliesFixed,
			"post_likes_fixed", result.PostLikesFixed,
			"reply_likes_fixed", result.ReplyLikesFixed,
		)
	} else {
		logger.Debugw("counter_reconcile_clean")
	}
	return result, nil
}
