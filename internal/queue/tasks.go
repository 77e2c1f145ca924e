package queue

import (
	"encoding/json"

	"github.com/shopkart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationEmail 运营通知邮件任务
	TaskNotificationEmail = constants.TaskNotificationEmail
)

// NotificationEmailPayload 运营通知邮件任务载荷
type NotificationEmailPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Outcome string `json:"outcome"`
}

// NewNotificationEmailTask 创建运营通知邮件任务
func NewNotificationEmailTask(payload NotificationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationEmail, body), nil
}
