package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailydiet/internal/model"
	"dailydiet/internal/pkg/jwtutil"
)

type fakeUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]*model.User{},
		byEmail: map[string]*model.User{},
	}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	if user, ok := f.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(id string) (*model.User, error) {
	if user, ok := f.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, "test-secret", 168*time.Hour)
}

func TestRegister_Success(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	result, err := svc.Register(RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEqual(t, "s3cret", result.User.PasswordHash)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(RegisterInput{Name: "Alice", Email: "a@example.com", Password: "one"})
	require.NoError(t, err)

	// same email always conflicts, whatever the other fields are
	_, err = svc.Register(RegisterInput{Name: "Bob", Email: "a@example.com", Password: "two"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(RegisterInput{Name: "", Email: "a@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(RegisterInput{Name: "Alice", Email: "a@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_Success(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	registered, err := svc.Register(RegisterInput{Name: "Alice", Email: "a@example.com", Password: "s3cret"})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Email: "a@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Login(LoginInput{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(RegisterInput{Name: "Alice", Email: "a@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetUserByID(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	registered, err := svc.Register(RegisterInput{Name: "Alice", Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.Name)

	missing, err := svc.GetUserByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
