package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/marron-next/internal/logger"
	"github.com/marron-next/internal/provider"
	"github.com/marron-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVerifyCodeEmail, c.handleVerifyCodeEmail)
	mux.HandleFunc(queue.TaskCounterReconcile, c.handleCounterReconcile)
}

func (c *Consumer) handleVerifyCodeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_verify_code_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VerifyCodeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_verify_code_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || payload.Code == "" {
		logger.Debugw("worker_verify_code_email_skip_invalid_payload", "email", email)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_verify_code_email_skip_email_service_nil", "email", email)
		return nil
	}
	if err := c.EmailService.SendVerifyCode(email, payload.Code, payload.Purpose, payload.Locale); err != nil {
		logger.Warnw("worker_verify_code_email_send_failed",
			"email", email,
			"purpose", payload.Purpose,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCounterReconcile(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_counter_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CounterReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_counter_reconcile_unmarshal_failed", "error", err)
		return err
	}
	if c.CounterService == nil {
		logger.Warnw("worker_counter_reconcile_skip_service_nil", "reason", payload.Reason)
		return nil
	}
	result, err := c.CounterService.Reconcile()
	if err != nil {
		logger.Warnw("worker_counter_reconcile_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_counter_reconcile_done",
		"reason", payload.Reason,
		"post_replies_fixed", result.PostRepliesFixed,
		"post_likes_fixed", result.PostLikesFixed,
		"reply_likes_fixed", result.ReplyLikesFixed,
	)
	return nil
}
