package service

import (
	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/queue"
)

// Notifier 操作结果通知接口，发送失败不回传给调用方
type Notifier interface {
	NotifySuccess(subject, body string)
	NotifyFailure(subject, body string)
}

// EmailNotifier 邮件通知实现：优先入队，队列未启用时异步直发
type EmailNotifier struct {
	queueClient  *queue.Client
	emailService *EmailService
	notifyTo     string
}

// NewEmailNotifier 创建邮件通知器
func NewEmailNotifier(queueClient *queue.Client, emailService *EmailService, notifyTo string) *EmailNotifier {
	return &EmailNotifier{
		queueClient:  queueClient,
		emailService: emailService,
		notifyTo:     notifyTo,
	}
}

// NotifySuccess 发送成功通知
func (n *EmailNotifier) NotifySuccess(subject, body string) {
	n.notify(constants.NotifyOutcomeSuccess, subject, body)
}

// NotifyFailure 发送失败通知
func (n *EmailNotifier) NotifyFailure(subject, body string) {
	n.notify(constants.NotifyOutcomeFailure, subject, body)
}

func (n *EmailNotifier) notify(outcome, subject, body string) {
	if n == nil || n.notifyTo == "" {
		logger.Debugw("notification_skipped_no_recipient", "subject", subject)
		return
	}
	if n.queueClient.Enabled() {
		payload := queue.NotificationEmailPayload{
			Subject: subject,
			Body:    body,
			Outcome: outcome,
		}
		if err := n.queueClient.EnqueueNotificationEmail(payload); err != nil {
			logger.Warnw("notification_enqueue_failed", "subject", subject, "error", err)
		}
		return
	}
	if n.emailService == nil {
		return
	}
	go func() {
		if err := n.emailService.SendNotificationEmail(n.notifyTo, subject, body); err != nil {
			logger.Warnw("notification_send_failed", "subject", subject, "outcome", outcome, "error", err)
		}
	}()
}
