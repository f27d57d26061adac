package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

type fakeUsers struct {
	byEmail map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return models.ErrDuplicateEmail
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func newService(users UserStore) *Service {
	return &Service{
		Users:  users,
		Tokens: &TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour},
		Log:    zerolog.Nop(),
	}
}

func TestRegister(t *testing.T) {
	svc := newService(newFakeUsers())

	token, user, err := svc.Register(context.Background(), "A@X.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email, "email is stored lowercase")
	assert.NotEmpty(t, user.ID)

	claims, err := svc.Tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newService(newFakeUsers())

	var ve *models.ValidationError
	_, _, err := svc.Register(context.Background(), "", "hunter2")
	assert.ErrorAs(t, err, &ve)

	_, _, err = svc.Register(context.Background(), "a@x.com", "")
	assert.ErrorAs(t, err, &ve)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := newService(newFakeUsers())

	_, _, err := svc.Register(context.Background(), "A@x.com", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "a@X.COM", "other")
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	users := newFakeUsers()
	svc := newService(users)

	_, registered, err := svc.Register(context.Background(), "a@x.com", "hunter2")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "A@x.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.Tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.Subject)
}

func TestLogin_GenericFailure(t *testing.T) {
	svc := newService(newFakeUsers())

	_, _, err := svc.Register(context.Background(), "a@x.com", "hunter2")
	require.NoError(t, err)

	// Missing user and wrong password are indistinguishable to the caller.
	_, _, errUnknown := svc.Login(context.Background(), "nobody@x.com", "hunter2")
	_, _, errWrongPw := svc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, errUnknown, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, models.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc := newService(newFakeUsers())

	_, user, err := svc.Register(context.Background(), "a@x.com", "hunter2")
	require.NoError(t, err)

	got, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.Me(context.Background(), "gone")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSeedAdmin(t *testing.T) {
	users := newFakeUsers()
	svc := newService(users)

	svc.SeedAdmin(context.Background(), "Admin@x.com", "secret")
	u, err := users.GetByEmail(context.Background(), "admin@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	// Re-seeding the same account is a no-op.
	svc.SeedAdmin(context.Background(), "admin@x.com", "secret")
	assert.Len(t, users.byEmail, 1)

	// Blank config seeds nothing.
	svc.SeedAdmin(context.Background(), "", "")
	assert.Len(t, users.byEmail, 1)
}
