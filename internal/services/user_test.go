package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func newUserServiceForTest(userRepo *fakeUserRepo, orgRepo *fakeOrgRepo) domain.UserService {
	return NewUserService(userRepo, orgRepo, fakeHasher{}, fakeTokenIssuer{}, time.Hour, nil)
}

func seedUser(repo *fakeUserRepo, username string, staff bool) *domain.User {
	return repo.add(&domain.User{
		Username:     username,
		Email:        username + "@campus.edu",
		IsStaff:      staff,
		Salt:         "salt",
		PasswordHash: "hash:salt:hunter22",
	})
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "sam", "sam@campus.edu", "hunter22", nil},
		{"short username", "ab", "sam@campus.edu", "hunter22", domain.ErrInvalidInput},
		{"bad username characters", "sam!", "sam@campus.edu", "hunter22", domain.ErrInvalidInput},
		{"bad email", "sam", "not-an-email", "hunter22", domain.ErrInvalidInput},
		{"short password", "sam", "sam@campus.edu", "short", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newUserServiceForTest(newFakeUserRepo(), newFakeOrgRepo())
			user, err := svc.SignUp(ctx, tt.username, tt.email, tt.password, "Sam", "Rivers")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, "sam", user.Username)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}

	t.Run("duplicate username", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		seedUser(userRepo, "sam", false)
		svc := newUserServiceForTest(userRepo, newFakeOrgRepo())
		_, err := svc.SignUp(ctx, "sam", "other@campus.edu", "hunter22", "", "")
		require.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		seedUser(userRepo, "sam", false)
		svc := newUserServiceForTest(userRepo, newFakeOrgRepo())
		_, err := svc.SignUp(ctx, "other", "sam@campus.edu", "hunter22", "", "")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	sam := seedUser(userRepo, "sam", false)
	svc := newUserServiceForTest(userRepo, newFakeOrgRepo())

	t.Run("valid credentials", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "sam", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, sam.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "sam", "wrong")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "hunter22")
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestUserService_ActorFor(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	orgRepo := newFakeOrgRepo()
	staff := seedUser(userRepo, "admin", true)
	sam := seedUser(userRepo, "sam", false)
	blake := seedUser(userRepo, "blake", false)
	seedOrg(orgRepo, 5, "chess-club")
	require.NoError(t, orgRepo.UpsertMember(ctx, 5, blake.ID, domain.RoleBoard))
	require.NoError(t, orgRepo.UpsertMember(ctx, 5, sam.ID, domain.RoleMember))
	svc := newUserServiceForTest(userRepo, orgRepo)

	t.Run("staff becomes site admin", func(t *testing.T) {
		actor, err := svc.ActorFor(ctx, staff.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ActorSiteAdmin, actor.Kind)
	})

	t.Run("board membership carried on actor", func(t *testing.T) {
		actor, err := svc.ActorFor(ctx, blake.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ActorStudent, actor.Kind)
		assert.True(t, actor.IsBoardMemberOf(5))
	})

	t.Run("plain membership does not grant board", func(t *testing.T) {
		actor, err := svc.ActorFor(ctx, sam.ID)
		require.NoError(t, err)
		assert.False(t, actor.IsBoardMemberOf(5))
	})

	t.Run("unknown user is unauthenticated", func(t *testing.T) {
		_, err := svc.ActorFor(ctx, 9999)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	bio := "I like chess"

	setup := func(t *testing.T) (*fakeUserRepo, domain.UserService, *domain.User) {
		userRepo := newFakeUserRepo()
		sam := seedUser(userRepo, "sam", false)
		return userRepo, newUserServiceForTest(userRepo, newFakeOrgRepo()), sam
	}

	t.Run("owner updates own profile", func(t *testing.T) {
		_, svc, sam := setup(t)
		owner := domain.NewStudentActor(sam.ID, sam.Username, nil)
		updated, err := svc.UpdateProfile(ctx, owner, "sam", domain.ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, bio, updated.Bio)
	})

	t.Run("admin updates any profile", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateProfile(ctx, domain.NewAdminActor(1, "admin"), "sam", domain.ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		_, svc, _ := setup(t)
		intruder := domain.NewStudentActor(999, "intruder", nil)
		_, err := svc.UpdateProfile(ctx, intruder, "sam", domain.ProfileUpdate{Bio: &bio})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateProfile(ctx, domain.Anonymous, "sam", domain.ProfileUpdate{Bio: &bio})
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("unknown profile is not found", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateProfile(ctx, domain.NewAdminActor(1, "admin"), "nobody", domain.ProfileUpdate{Bio: &bio})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	seedUser(userRepo, "sam", false)
	svc := newUserServiceForTest(userRepo, newFakeOrgRepo())

	user, err := svc.GetProfile(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, "sam", user.Username)

	_, err = svc.GetProfile(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
