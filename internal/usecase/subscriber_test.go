package usecase

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriberRepo struct {
	upsertErr error
	upserted  []*Subscriber
	deleted   []string
	roles     map[string]string
	flags     map[string]bool
}

func (f *fakeSubscriberRepo) Upsert(_ context.Context, s *Subscriber) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, s)
	return nil
}

func (f *fakeSubscriberRepo) FetchByEmail(context.Context, string) (*Subscriber, error) {
	return nil, nil
}

func (f *fakeSubscriberRepo) Delete(_ context.Context, email string) error {
	f.deleted = append(f.deleted, email)
	return nil
}

func (f *fakeSubscriberRepo) List(context.Context) ([]*Subscriber, error) { return nil, nil }

func (f *fakeSubscriberRepo) SetSubscribed(_ context.Context, email string, subscribed bool) error {
	if f.flags == nil {
		f.flags = map[string]bool{}
	}
	f.flags[email] = subscribed
	return nil
}

func (f *fakeSubscriberRepo) SetRole(_ context.Context, email, role string) error {
	if f.roles == nil {
		f.roles = map[string]string{}
	}
	f.roles[email] = role
	return nil
}

type fakeMailer struct {
	note string
	err  error
}

func (f *fakeMailer) Subscribe(context.Context, string) (string, error) { return f.note, f.err }

func TestSubscribe_LocalProfileSurvivesSyncFailure(t *testing.T) {
	repo := &fakeSubscriberRepo{upsertErr: errors.New("connection refused")}
	uc := NewSubscriberUseCase(repo, &fakeMailer{note: "ok"}, "", log.DefaultLogger)

	out, err := uc.Subscribe(context.Background(), "Reader@Example.COM", []string{"APAC"}, nil)
	require.NoError(t, err, "a sync failure must not fail the subscription")

	require.NotNil(t, out.Profile)
	assert.Equal(t, "reader@example.com", out.Profile.Email)
	assert.True(t, out.Profile.IsSubscribed)
	assert.False(t, out.Synced)
	assert.Error(t, out.SyncErr)
	assert.Equal(t, "ok", out.MailNote)
}

func TestSubscribe_MailFailureBecomesNote(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	uc := NewSubscriberUseCase(repo, &fakeMailer{err: errors.New("timeout")}, "", log.DefaultLogger)

	out, err := uc.Subscribe(context.Background(), "a@b.co", nil, nil)
	require.NoError(t, err)
	assert.True(t, out.Synced)
	assert.Equal(t, "Digest mail-out sync failed", out.MailNote)
}

func TestSubscribe_InvalidEmailRejected(t *testing.T) {
	uc := NewSubscriberUseCase(&fakeSubscriberRepo{}, &fakeMailer{}, "", log.DefaultLogger)

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := uc.Subscribe(context.Background(), email, nil, nil)
		assert.True(t, kerrors.IsBadRequest(err), "email %q should be rejected", email)
	}
}

func TestSubscribe_PrimaryAdminGetsSuperAdminRole(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	uc := NewSubscriberUseCase(repo, &fakeMailer{}, "Boss@Agency.com", log.DefaultLogger)

	out, err := uc.Subscribe(context.Background(), "boss@agency.com", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, out.Profile.Role)

	out, err = uc.Subscribe(context.Background(), "other@agency.com", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RoleSubscriber, out.Profile.Role)
}

func TestSetRole_ValidationAndProtection(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	uc := NewSubscriberUseCase(repo, &fakeMailer{}, "boss@agency.com", log.DefaultLogger)

	err := uc.SetRole(context.Background(), "a@b.co", "owner")
	assert.True(t, kerrors.IsBadRequest(err))

	err = uc.SetRole(context.Background(), "BOSS@agency.com", RoleSubscriber)
	assert.True(t, kerrors.IsForbidden(err))

	// Re-asserting super_admin on the primary admin is allowed.
	require.NoError(t, uc.SetRole(context.Background(), "boss@agency.com", RoleSuperAdmin))
	require.NoError(t, uc.SetRole(context.Background(), "a@b.co", RoleAdmin))
	assert.Equal(t, RoleAdmin, repo.roles["a@b.co"])
}

func TestDelete_PrimaryAdminProtected(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	uc := NewSubscriberUseCase(repo, &fakeMailer{}, "boss@agency.com", log.DefaultLogger)

	err := uc.Delete(context.Background(), "Boss@Agency.com")
	assert.True(t, kerrors.IsForbidden(err))
	assert.Empty(t, repo.deleted)

	require.NoError(t, uc.Delete(context.Background(), "other@agency.com"))
	assert.Equal(t, []string{"other@agency.com"}, repo.deleted)
}

func TestUnsubscribe_ClearsFlag(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	uc := NewSubscriberUseCase(repo, &fakeMailer{}, "", log.DefaultLogger)

	require.NoError(t, uc.Unsubscribe(context.Background(), " Reader@Example.com "))
	subscribed, ok := repo.flags["reader@example.com"]
	require.True(t, ok)
	assert.False(t, subscribed)
}
