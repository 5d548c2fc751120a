// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

/*
Package invite implements admin-issued, one-time viewer enrollment.

Architecture:

  - Service: Issues tokens and redeems them into viewer accounts.
  - Repository: Postgres persistence with compare-and-set redemption.
  - Mailer: Fire-and-forget notification; delivery failure never blocks issuance.

An invite is the only path to a viewer account. Unknown, expired, and
already-redeemed tokens are indistinguishable to the client.
*/
package invite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/auth"
	"github.com/buihoang/memoria/internal/platform/apperr"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/mailer"
	"github.com/buihoang/memoria/internal/platform/sec"
	"github.com/buihoang/memoria/pkg/uuid"
)

// Provisioner creates accounts and sessions for redeemed invites.
// Implemented by the auth service; tests inject fakes.
type Provisioner interface {
	CreateAccount(context context.Context, email, password string, role access.Role) (*auth.User, error)
	IssueSession(context context.Context, userID string) (string, time.Time, error)
}

// Service implements invite issuance and redemption.
type Service struct {
	invites     Repository
	provisioner Provisioner
	mail        mailer.Mailer
	expiresIn   time.Duration
	logger      *slog.Logger
}

// NewService constructs the invite [Service].
func NewService(invites Repository, provisioner Provisioner, mail mailer.Mailer, expiresIn time.Duration, logger *slog.Logger) *Service {
	return &Service{
		invites:     invites,
		provisioner: provisioner,
		mail:        mail,
		expiresIn:   expiresIn,
		logger:      logger,
	}
}

// # Issuance

/*
Create issues a new invite for an email address.

Description: Generates the one-time token, persists the invite with the
configured lifetime, and dispatches the notification email asynchronously.
Issuance succeeds even if the email cannot be delivered; the failure is
logged and the admin can re-issue.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Invite: Created invite (token omitted from JSON)
  - error: Token generation or storage failures
*/
func (service *Service) Create(context context.Context, email string) (*Invite, error) {
	token, err := sec.GenerateToken(constants.InviteTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("invite_service_token_generation_failed: %w", err)
	}

	invite := &Invite{
		ID:        uuid.New(),
		Email:     email,
		Token:     token,
		Role:      access.RoleViewer,
		ExpiresAt: time.Now().Add(service.expiresIn),
	}

	if err := service.invites.Create(context, invite); err != nil {
		return nil, err
	}

	// Fire-and-forget: the invite row is the source of truth, the email is
	// a courtesy. Detached from the request context so client disconnects
	// don't cancel delivery.
	go func() {
		if err := service.mail.SendInvite(withoutCancel(context), email, token); err != nil {
			service.logger.Warn("invite_email_failed",
				slog.String("invite_id", invite.ID),
				slog.String("error", err.Error()),
			)
		}
	}()

	return invite, nil
}

// # Redemption

// AcceptInput holds the data required to redeem an invite.
type AcceptInput struct {
	Token    string
	Password string
}

// AcceptResult is a redeemed invite turned into a live viewer session.
type AcceptResult struct {
	SessionToken string
	ExpiresAt    time.Time
	User         *auth.User
}

/*
Accept redeems an invite into a viewer account and logs it in.

Description: Validates the token, atomically consumes the invite (two
concurrent accepts can never both succeed), creates the viewer account with
the chosen password, and issues a session so the new viewer lands signed in.

Parameters:
  - context: context.Context
  - input: AcceptInput

Returns:
  - *AcceptResult: Session token and the created account
  - error: NotFound for unknown/expired/redeemed tokens (deliberately
    indistinguishable), Conflict if the email already has an account
*/
func (service *Service) Accept(context context.Context, input AcceptInput) (*AcceptResult, error) {
	invite, err := service.invites.FindByToken(context, input.Token)
	if err != nil {
		return nil, apperr.NotFound("Invite")
	}

	if !invite.Usable(time.Now()) {
		// Expired and redeemed look identical to unknown.
		return nil, apperr.NotFound("Invite")
	}

	// Consume first: if the account creation below fails the invite is
	// burned, which errs on the safe side for a one-time credential.
	if err := service.invites.Redeem(context, invite.ID); err != nil {
		return nil, apperr.NotFound("Invite")
	}

	user, err := service.provisioner.CreateAccount(context, invite.Email, input.Password, invite.Role)
	if err != nil {
		return nil, err
	}

	sessionToken, expiresAt, err := service.provisioner.IssueSession(context, user.ID)
	if err != nil {
		return nil, err
	}

	return &AcceptResult{
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

// withoutCancel detaches a context's cancellation while keeping its values.
func withoutCancel(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
