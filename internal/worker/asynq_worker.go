package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/provider"
	"github.com/shopkart-next/internal/queue"
	"github.com/shopkart-next/internal/service"

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
	mux.HandleFunc(queue.TaskNotificationEmail, c.handleNotificationEmail)
}

func (c *Consumer) handleNotificationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_email_unmarshal_failed", "error", err)
		return err
	}
	subject := strings.TrimSpace(payload.Subject)
	if subject == "" {
		logger.Debugw("worker_notification_email_skip_empty_subject")
		return nil
	}
	receiverEmail := ""
	if c.Config != nil {
		receiverEmail = strings.TrimSpace(c.Config.Email.NotifyTo)
	}
	if receiverEmail == "" {
		logger.Debugw("worker_notification_email_skip_empty_receiver", "subject", subject)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_notification_email_skip_email_service_nil", "subject", subject)
		return nil
	}
	if err := c.EmailService.SendNotificationEmail(receiverEmail, subject, payload.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Debugw("worker_notification_email_skip_disabled", "subject", subject)
			return nil
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrEmailRecipientRejected):
			// 收件人本身有问题，重试也不会成功
			logger.Warnw("worker_notification_email_skip_bad_receiver",
				"subject", subject,
				"receiver_email", receiverEmail,
				"error", err,
			)
			return nil
		default:
			logger.Warnw("worker_notification_email_send_failed",
				"subject", subject,
				"receiver_email", receiverEmail,
				"outcome", payload.Outcome,
				"error", err,
			)
			return err
		}
	}
	return nil
}
