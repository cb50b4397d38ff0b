package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCleaner struct {
	purged []string
	err    error
}

func (r *recordingCleaner) PurgeUser(_ context.Context, userID string) error {
	r.purged = append(r.purged, userID)
	return r.err
}

func newTestService(t *testing.T) (*Service, User) {
	t.Helper()
	svc := NewService(NewMemoryRepo())
	user, err := svc.Create(context.Background(), "  Ada@Example.com ", "password123", "Ada")
	require.NoError(t, err)
	return svc, user
}

func TestCreateNormalizesEmailAndHashes(t *testing.T) {
	svc, user := newTestService(t)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())

	_, err := svc.Create(context.Background(), "ADA@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	got, err := svc.Authenticate(ctx, "ada@EXAMPLE.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	user.IsActive = false
	_, err = svc.Repo.Update(ctx, user)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "ada@example.com", "password123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	active, err := svc.IsActive(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, active)
	active, err = svc.IsActive(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestUpdateProfile(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()
	other, err := svc.Create(ctx, "grace@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Ada Lovelace"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email)

	taken := other.Email
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	same := "ADA@example.com"
	_, err = svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Email: &same})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "newpassword1"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "password123", "password123"), ErrSamePassword)
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "password123", "newpassword1"))

	_, err := svc.Authenticate(ctx, user.Email, "newpassword1")
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	svc, user := newTestService(t)
	cleaner := &recordingCleaner{}
	svc.Cleaner = cleaner
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID, "password123", "delete"), ErrBadConfirmation)
	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID, "wrong", DeleteConfirmation), ErrWrongPassword)
	assert.Empty(t, cleaner.purged)

	cleaner.err = errors.New("storage down")
	assert.Error(t, svc.DeleteAccount(ctx, user.ID, "password123", DeleteConfirmation))
	_, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)

	cleaner.err = nil
	require.NoError(t, svc.DeleteAccount(ctx, user.ID, "password123", DeleteConfirmation))
	assert.Equal(t, []string{user.ID, user.ID}, cleaner.purged)
	_, err = svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
