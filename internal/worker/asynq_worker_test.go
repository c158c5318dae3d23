package worker

import (
	"context"
	"testing"

	"github.com/marron-next/internal/provider"
	"github.com/marron-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleVerifyCodeEmailBadPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskVerifyCodeEmail, []byte("{not json"))
	if err := c.handleVerifyCodeEmail(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should fail")
	}
}

func TestHandleVerifyCodeEmailSkipsEmptyEmail(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task, err := queue.NewVerifyCodeEmailTask(queue.VerifyCodeEmailPayload{Email: "   ", Code: "123456"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleVerifyCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("blank email should be skipped, got %v", err)
	}
}

func TestHandleVerifyCodeEmailSkipsNilEmailService(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task, err := queue.NewVerifyCodeEmailTask(queue.VerifyCodeEmailPayload{Email: "user@example.com", Code: "123456", Purpose: "login"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleVerifyCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("nil email service should be skipped, got %v", err)
	}
}

func TestHandleCounterReconcileBadPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskCounterReconcile, []byte("{not json"))
	if err := c.handleCounterReconcile(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should fail")
	}
}

func TestHandleCounterReconcileSkipsNilService(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task, err := queue.NewCounterReconcileTask(queue.CounterReconcilePayload{Reason: "manual"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleCounterReconcile(context.Background(), task); err != nil {
		t.Fatalf("nil counter service should be skipped, got %v", err)
	}
}
