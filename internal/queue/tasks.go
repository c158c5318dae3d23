package queue

import (
	"encoding/json"

	"github.com/marron-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVerifyCodeEmail 验证码邮件投递任务
	TaskVerifyCodeEmail = constants.TaskVerifyCodeEmail
	// TaskCounterReconcile 计数对账任务
	TaskCounterReconcile = constants.TaskCounterReconcile
)

// VerifyCodeEmailPayload 验证码邮件任务载荷
type VerifyCodeEmailPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
	Locale  string `json:"locale"`
}

// CounterReconcilePayload 计数对账任务载荷
type CounterReconcilePayload struct {
	Reason string `json:"reason"`
}

// NewVerifyCodeEmailTask 创建验证码邮件任务
func NewVerifyCodeEmailTask(payload VerifyCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVerifyCodeEmail, body), nil
}

// NewCounterReconcileTask 创建计数对账任务
func NewCounterReconcileTask(payload CounterReconcilePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCounterReconcile, body), nil
}
