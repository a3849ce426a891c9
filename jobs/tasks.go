// Package jobs defines background tasks and the Asynq worker that runs
// them. Email delivery is decoupled from the request/response cycle:
// handlers enqueue, the worker sends.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// Sender delivers a rendered email. *mail.Mailer satisfies it.
type Sender interface {
	Send(to, subject, html string) error
}

// NewSendEmailHandler returns the worker-side handler for TaskTypeSendEmail.
// Delivery errors are returned so Asynq retries; malformed payloads are
// dropped without retry.
func NewSendEmailHandler(sender Sender, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("send email task: bad payload", slog.Any("error", err))
			return asynq.SkipRetry
		}
		if err := sender.Send(payload.To, payload.Subject, payload.Body); err != nil {
			logger.Error("send email task", slog.String("to", payload.To), slog.Any("error", err))
			return err
		}
		return nil
	}
}
