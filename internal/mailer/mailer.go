// Package mailer defines the email delivery collaborator.
package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Mailer sends transactional email. Template rendering and transport
// are the implementation's concern.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer logs instead of sending. Used in development and tests.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a mailer that only logs.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerification(_ context.Context, email, token string) error {
	m.logger.Info("verification email",
		zap.String("email", email),
		zap.String("token", token),
	)

	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.logger.Info("password reset email",
		zap.String("email", email),
		zap.String("token", token),
	)

	return nil
}
