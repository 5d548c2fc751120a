// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package mailer provides outbound transactional email delivery via SendGrid.

Delivery is fire-and-forget from the caller's perspective: invite creation
succeeds even if the notification fails, and failures are only logged. The
core never retries email.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer defines the outbound email contract consumed by the invite flow.
type Mailer interface {
	// SendInvite notifies an email address that it has been invited,
	// embedding the one-time redemption token in the accept URL.
	SendInvite(context context.Context, to, token string) error
}

// # SendGrid Implementation

// SendgridMailer sends transactional mail through the SendGrid v3 API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   string
	appURL string
	log    *slog.Logger
}

// NewSendgrid constructs a [SendgridMailer].
func NewSendgrid(apiKey, from, appURL string, log *slog.Logger) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
		appURL: appURL,
		log:    log,
	}
}

// SendInvite implements [Mailer].
func (m *SendgridMailer) SendInvite(context context.Context, to, token string) error {
	// Invite links land in the frontend route that completes account setup.
	inviteURL := fmt.Sprintf("%s/invite/accept?token=%s", m.appURL, token)

	message := mail.NewSingleEmail(
		mail.NewEmail("Memoria", m.from),
		"You are invited to Memoria",
		mail.NewEmail("", to),
		fmt.Sprintf("You have been invited to view photos. Accept your invite here: %s", inviteURL),
		fmt.Sprintf(`<p>You have been invited to view photos.</p><p><a href="%s">Accept your invite</a></p>`, inviteURL),
	)

	response, err := m.client.SendWithContext(context, message)
	if err != nil {
		return fmt.Errorf("mailer: sendgrid request failed: %w", err)
	}
	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mailer: sendgrid rejected message with status %d", response.StatusCode)
	}

	m.log.Info("invite_email_sent", slog.String("to", to))
	return nil
}

// # No-op Implementation

// NoopMailer is used in development when no SendGrid key is configured.
// It logs the invite URL instead of sending it.
type NoopMailer struct {
	AppURL string
	Log    *slog.Logger
}

// SendInvite implements [Mailer] by logging the redemption link.
func (m *NoopMailer) SendInvite(_ context.Context, to, token string) error {
	m.Log.Info("invite_email_skipped",
		slog.String("to", to),
		slog.String("accept_url", fmt.Sprintf("%s/invite/accept?token=%s", m.AppURL, token)),
	)
	return nil
}
