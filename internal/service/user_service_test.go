package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reservation-service/internal/config"
	"github.com/spec-kit/reservation-service/internal/domain"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

func newUserHarness(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	uploads := NewUploadService(config.UploadConfig{Dir: t.TempDir(), MaxSizeBytes: 5 * 1024 * 1024})
	return NewUserService(users, uploads, zap.NewNop()), users
}

func seedUser(t *testing.T, users *fakeUserRepo, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: email, Role: domain.RoleUser}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserProfileUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("absent fields stay untouched", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")
		user.DisplayName = "Alice"
		user.Bio = "Climber"
		require.NoError(t, users.Update(ctx, user))

		bio := "Boulderer"
		updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Boulderer", updated.Bio)
		assert.Equal(t, "Alice", updated.DisplayName)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")
		user.DisplayName = "Alice"
		require.NoError(t, users.Update(ctx, user))

		empty := ""
		updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{DisplayName: &empty})
		require.NoError(t, err)
		assert.Equal(t, "", updated.DisplayName)
	})

	t.Run("email change to a taken address conflicts", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")
		seedUser(t, users, "bob", "bob@example.com")

		taken := "bob@example.com"
		_, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Email: &taken})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	})

	t.Run("resubmitting own email is fine", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")

		same := "alice@example.com"
		_, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Email: &same})
		assert.NoError(t, err)
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		svc, _ := newUserHarness(t)

		bio := "nobody"
		_, err := svc.UpdateProfile(ctx, 404, ProfileUpdateInput{Bio: &bio})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}

func TestUserAdminOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("list requires administrator", func(t *testing.T) {
		svc, users := newUserHarness(t)
		seedUser(t, users, "alice", "alice@example.com")

		_, err := svc.List(ctx, regularUser(1))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

		result, err := svc.List(ctx, adminUser(99))
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("delete requires administrator", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")

		err := svc.Delete(ctx, regularUser(2), user.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

		require.NoError(t, svc.Delete(ctx, adminUser(99), user.ID))

		err = svc.Delete(ctx, adminUser(99), user.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})
}

func TestUserUpdateAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("stores avatar and replaces old one", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")

		first, err := svc.UpdateAvatar(ctx, user.ID, AvatarUpload{FileName: "me.png", Data: pngBytes()})
		require.NoError(t, err)
		require.NotNil(t, first.AvatarPath)

		second, err := svc.UpdateAvatar(ctx, user.ID, AvatarUpload{FileName: "me2.png", Data: pngBytes()})
		require.NoError(t, err)
		require.NotNil(t, second.AvatarPath)
		assert.NotEqual(t, *first.AvatarPath, *second.AvatarPath)
	})

	t.Run("invalid upload leaves profile untouched", func(t *testing.T) {
		svc, users := newUserHarness(t)
		user := seedUser(t, users, "alice", "alice@example.com")

		_, err := svc.UpdateAvatar(ctx, user.ID, AvatarUpload{FileName: "notes.txt", Data: []byte("plain text")})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.AvatarPath)
	})
}
