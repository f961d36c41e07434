package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("%w: email already exists", domain.ErrDuplicate)
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func newTestUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, noopLogger{}, validator.New())
}

func TestRegisterDefaultsToClient(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestUserService(repo)

	user, err := service.Register(context.Background(), "Ayoub", "Ayoub@Example.COM", "secret123", "")
	require.NoError(t, err)

	assert.Equal(t, domain.Client, user.Role)
	assert.Equal(t, "ayoub@example.com", user.Email, "email normalized to lowercase")
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	_, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "abc", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	_, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	_, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "Other", "ayoub@example.com", "secret456", "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	registered, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	user, err := service.Login(context.Background(), "Ayoub@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLoginUniformFailure(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	_, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	_, wrongPassword := service.Login(context.Background(), "ayoub@example.com", "wrong")
	_, unknownEmail := service.Login(context.Background(), "nobody@example.com", "secret123")

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, domain.ErrUnauthorized)
	// Same message either way so the response doesn't leak which accounts exist.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestUserService(repo)

	user, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID.String(), "secret123", "newsecret"))

	_, err = service.Login(context.Background(), "ayoub@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	user, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), user.ID.String(), "wrong", "newsecret")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateUserRole(t *testing.T) {
	service := newTestUserService(newFakeUserRepo())

	user, err := service.Register(context.Background(), "Ayoub", "ayoub@example.com", "secret123", "")
	require.NoError(t, err)

	updated, err := service.UpdateUser(context.Background(), user.ID.String(), "", "", domain.Admin)
	require.NoError(t, err)
	assert.Equal(t, domain.Admin, updated.Role)

	_, err = service.UpdateUser(context.Background(), user.ID.String(), "", "", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
