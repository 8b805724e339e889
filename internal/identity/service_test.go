package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/identity"
)

const testSecret = "test-secret"

func hashPassword(t *testing.T, plain string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    identity.RegisterParams
		setupMock func(m *identity.MockRepository)
		wantKind  fault.Kind
	}

	validParams := identity.RegisterParams{
		Email:            "Owner@Example.com",
		Password:         "supersecret",
		FirstName:        "Ada",
		LastName:         "Byron",
		OrganizationName: "Byron Analytics",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams,
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(nil, fault.NotFound("user not found"))
				m.EXPECT().
					CreateUserWithOrganization(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *identity.User, org *identity.Organization) error {
						u.ID = uuid.New()
						org.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "DuplicateEmail",
			params: identity.RegisterParams{
				Email:            "owner@example.com",
				Password:         "supersecret",
				OrganizationName: "Byron Analytics",
			},
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(&identity.User{ID: uuid.New(), Email: "owner@example.com"}, nil)
			},
			wantKind: fault.KindConflict,
		},
		{
			name: "ShortPassword",
			params: identity.RegisterParams{
				Email:            "owner@example.com",
				Password:         "short",
				OrganizationName: "Byron Analytics",
			},
			wantKind: fault.KindInvalid,
		},
		{
			name: "MissingOrganizationName",
			params: identity.RegisterParams{
				Email:    "owner@example.com",
				Password: "supersecret",
			},
			wantKind: fault.KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := identity.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := identity.NewService(repo, testSecret, time.Hour)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.Token)
			assert.Equal(t, identity.RoleOwner, got.Role)
			assert.Equal(t, "owner@example.com", got.User.Email)
			require.Len(t, got.Organizations, 1)
			assert.Equal(t, got.Organization.ID, got.Organizations[0].OrganizationID)
		})
	}
}

func TestService_Login(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	hash := hashPassword(t, "supersecret")

	activeUser := func() *identity.User {
		return &identity.User{
			ID:             userID,
			Email:          "owner@example.com",
			HashedPassword: hash,
			IsActive:       true,
		}
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *identity.MockRepository)
		wantKind  fault.Kind
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "Owner@Example.com",
			password: "supersecret",
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(activeUser(), nil)
				m.EXPECT().
					MembershipsOf(gomock.Any(), userID).
					Return([]identity.OrgRole{
						{OrganizationID: orgID, Name: "Byron Analytics", Role: identity.RoleOwner},
					}, nil)
				m.EXPECT().
					OrganizationByID(gomock.Any(), orgID).
					Return(&identity.Organization{ID: orgID, Name: "Byron Analytics", IsActive: true}, nil)
			},
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "supersecret",
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, fault.NotFound("user not found"))
			},
			wantKind: fault.KindUnauthorized,
		},
		{
			name:     "WrongPassword",
			email:    "owner@example.com",
			password: "nope-wrong",
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(activeUser(), nil)
			},
			wantKind: fault.KindUnauthorized,
		},
		{
			name:     "InactiveUser",
			email:    "owner@example.com",
			password: "supersecret",
			setupMock: func(m *identity.MockRepository) {
				u := activeUser()
				u.IsActive = false
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(u, nil)
			},
			wantKind: fault.KindUnauthorized,
		},
		{
			name:     "NoOrganizations",
			email:    "owner@example.com",
			password: "supersecret",
			setupMock: func(m *identity.MockRepository) {
				m.EXPECT().
					UserByEmail(gomock.Any(), "owner@example.com").
					Return(activeUser(), nil)
				m.EXPECT().
					MembershipsOf(gomock.Any(), userID).
					Return(nil, nil)
			},
			wantKind: fault.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := identity.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := identity.NewService(repo, testSecret, time.Hour)
			got, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind))
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.Token)
			assert.Equal(t, orgID, got.Organization.ID)
			assert.Equal(t, identity.RoleOwner, got.Role)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	hash := hashPassword(t, "supersecret")

	// Issue a real token through Login so Authenticate parses production output.
	issue := func(t *testing.T, svc *identity.Service, repo *identity.MockRepository) string {
		t.Helper()

		repo.EXPECT().
			UserByEmail(gomock.Any(), "owner@example.com").
			Return(&identity.User{ID: userID, Email: "owner@example.com", HashedPassword: hash, IsActive: true}, nil)
		repo.EXPECT().
			MembershipsOf(gomock.Any(), userID).
			Return([]identity.OrgRole{{OrganizationID: orgID, Name: "Byron Analytics", Role: identity.RoleOwner}}, nil)
		repo.EXPECT().
			OrganizationByID(gomock.Any(), orgID).
			Return(&identity.Organization{ID: orgID, IsActive: true}, nil)

		session, err := svc.Login(context.Background(), "owner@example.com", "supersecret")
		require.NoError(t, err)

		return session.Token
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := identity.NewMockRepository(ctrl)
		svc := identity.NewService(repo, testSecret, time.Hour)
		token := issue(t, svc, repo)

		repo.EXPECT().
			UserByID(gomock.Any(), userID).
			Return(&identity.User{ID: userID, Email: "owner@example.com", IsActive: true}, nil)
		repo.EXPECT().
			Membership(gomock.Any(), userID, orgID).
			Return(&identity.Membership{OrganizationID: orgID, UserID: userID, Role: identity.RoleOwner, IsActive: true}, nil)
		repo.EXPECT().
			OrganizationByID(gomock.Any(), orgID).
			Return(&identity.Organization{ID: orgID, IsActive: true}, nil)

		got, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, got.User.ID)
		assert.Equal(t, orgID, got.Organization.ID)
		assert.Equal(t, identity.RoleOwner, got.Role)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := identity.NewService(identity.NewMockRepository(ctrl), testSecret, time.Hour)

		_, err := svc.Authenticate(context.Background(), "not-a-jwt")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindUnauthorized))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := identity.NewMockRepository(ctrl)
		issuer := identity.NewService(repo, "other-secret", time.Hour)
		token := issue(t, issuer, repo)

		verifier := identity.NewService(identity.NewMockRepository(ctrl), testSecret, time.Hour)

		_, err := verifier.Authenticate(context.Background(), token)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindUnauthorized))
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := identity.NewMockRepository(ctrl)
		svc := identity.NewService(repo, testSecret, -time.Minute)
		token := issue(t, svc, repo)

		_, err := svc.Authenticate(context.Background(), token)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindUnauthorized))
	})

	t.Run("RevokedMembership", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := identity.NewMockRepository(ctrl)
		svc := identity.NewService(repo, testSecret, time.Hour)
		token := issue(t, svc, repo)

		repo.EXPECT().
			UserByID(gomock.Any(), userID).
			Return(&identity.User{ID: userID, IsActive: true}, nil)
		repo.EXPECT().
			Membership(gomock.Any(), userID, orgID).
			Return(&identity.Membership{OrganizationID: orgID, UserID: userID, IsActive: false}, nil)

		_, err := svc.Authenticate(context.Background(), token)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindUnauthorized))
	})
}
