// Package usecase holds the dashboard business logic between the HTTP service
// and the data/intel layers.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// Subscriber roles.
const (
	RoleSubscriber = "subscriber"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Subscriber is one digest subscriber record, keyed by lowercased email.
type Subscriber struct {
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Regions      []string   `json:"regions"`
	Topics       []string   `json:"topics"`
	IsSubscribed bool       `json:"is_subscribed"`
	ConsentDate  *time.Time `json:"consent_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
}

// SubscriberRepo persists subscriber records. Implementations lowercase the
// email key; Upsert is idempotent on it.
type SubscriberRepo interface {
	Upsert(ctx context.Context, s *Subscriber) error
	FetchByEmail(ctx context.Context, email string) (*Subscriber, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*Subscriber, error)
	SetSubscribed(ctx context.Context, email string, subscribed bool) error
	SetRole(ctx context.Context, email, role string) error
}

// Mailer is the outbound list-subscription boundary. The note describes the
// delivery outcome; an error means the provider was unreachable.
type Mailer interface {
	Subscribe(ctx context.Context, email string) (string, error)
}

// SubscribeOutcome separates the local result from the remote sync results.
// The profile is always produced; a failed database sync or mail-out demotes
// the outcome to a degraded success, never to a failure.
type SubscribeOutcome struct {
	Profile  *Subscriber `json:"profile"`
	SyncErr  error       `json:"-"`
	Synced   bool        `json:"synced"`
	MailNote string      `json:"mail_note,omitempty"`
}

// SubscriberUseCase implements the registration/subscription flows and the
// admin console operations.
type SubscriberUseCase struct {
	repo         SubscriberRepo
	mailer       Mailer
	primaryAdmin string
	log          *log.Helper
}

// NewSubscriberUseCase wires the subscriber flows. primaryAdmin is the email
// of the protected super admin; it may be empty.
func NewSubscriberUseCase(repo SubscriberRepo, mailer Mailer, primaryAdmin string, logger log.Logger) *SubscriberUseCase {
	return &SubscriberUseCase{
		repo:         repo,
		mailer:       mailer,
		primaryAdmin: strings.ToLower(primaryAdmin),
		log:          log.NewHelper(logger),
	}
}

// Subscribe registers (or re-registers) a digest subscriber. The local
// profile always succeeds once the input validates; cloud sync and the
// mail-out are reported as independent outcomes.
func (uc *SubscriberUseCase) Subscribe(ctx context.Context, email string, regions, topics []string) (*SubscribeOutcome, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.BadRequest("INVALID_EMAIL", "a valid email address is required")
	}

	now := time.Now()
	profile := &Subscriber{
		Email:        email,
		Role:         uc.roleFor(email),
		Regions:      regions,
		Topics:       topics,
		IsSubscribed: true,
		ConsentDate:  &now,
	}
	outcome := &SubscribeOutcome{Profile: profile}

	if err := uc.repo.Upsert(ctx, profile); err != nil {
		uc.log.Errorf("subscriber sync failed for %s: %v", email, err)
		outcome.SyncErr = err
	} else {
		outcome.Synced = true
	}

	note, err := uc.mailer.Subscribe(ctx, email)
	if err != nil {
		uc.log.Warnf("mail-out subscribe failed for %s: %v", email, err)
		note = "Digest mail-out sync failed"
	}
	outcome.MailNote = note

	return outcome, nil
}

// Profile looks up the stored record for a returning subscriber.
func (uc *SubscriberUseCase) Profile(ctx context.Context, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.BadRequest("INVALID_EMAIL", "a valid email address is required")
	}
	return uc.repo.FetchByEmail(ctx, email)
}

// Unsubscribe clears the subscription flag.
func (uc *SubscriberUseCase) Unsubscribe(ctx context.Context, email string) error {
	return uc.repo.SetSubscribed(ctx, strings.ToLower(strings.TrimSpace(email)), false)
}

// List returns all subscriber records for the admin console.
func (uc *SubscriberUseCase) List(ctx context.Context) ([]*Subscriber, error) {
	return uc.repo.List(ctx)
}

// SetRole updates a subscriber's role. The primary super admin cannot be
// demoted.
func (uc *SubscriberUseCase) SetRole(ctx context.Context, email, role string) error {
	switch role {
	case RoleSubscriber, RoleAdmin, RoleSuperAdmin:
	default:
		return errors.BadRequest("INVALID_ROLE", "unknown role: "+role)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if uc.primaryAdmin != "" && email == uc.primaryAdmin && role != RoleSuperAdmin {
		return errors.Forbidden("PROTECTED_ADMIN", "primary system administrator role cannot be changed")
	}
	return uc.repo.SetRole(ctx, email, role)
}

// Delete removes a subscriber record. The primary super admin is protected.
func (uc *SubscriberUseCase) Delete(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if uc.primaryAdmin != "" && email == uc.primaryAdmin {
		return errors.Forbidden("PROTECTED_ADMIN", "primary system administrator cannot be deleted")
	}
	return uc.repo.Delete(ctx, email)
}

// roleFor forces the configured primary admin to super_admin on every write.
func (uc *SubscriberUseCase) roleFor(email string) string {
	if uc.primaryAdmin != "" && email == uc.primaryAdmin {
		return RoleSuperAdmin
	}
	return RoleSubscriber
}
