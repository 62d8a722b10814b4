package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/dvillegas/pricepilot-backend/pkg/auth"
	"github.com/dvillegas/pricepilot-backend/pkg/auth/session"
	"github.com/dvillegas/pricepilot-backend/pkg/config"
	"github.com/dvillegas/pricepilot-backend/pkg/db/models"
	pkgerrors "github.com/dvillegas/pricepilot-backend/pkg/errors"
	"github.com/dvillegas/pricepilot-backend/pkg/enums"
	"github.com/dvillegas/pricepilot-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "pricepilot-test",
	ExpirationMinutes: 15,
}

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

type stubUserRepo struct {
	byEmail       map[string]*models.User
	byID          map[uuid.UUID]*models.User
	lastLoginSet  bool
	lastLoginUser uuid.UUID
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	s.lastLoginSet = true
	s.lastLoginUser = id
	return nil
}

type stubSessionManager struct {
	generated []string
	revoked   []string
	rotateErr error
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	newID := session.NewAccessID()
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func newTestUser(t *testing.T, email, password string, role enums.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTCfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	user := newTestUser(t, "shopper@example.com", "hunter22", enums.UserRoleVerified, true)
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Shopper@Example.com ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if !repo.lastLoginSet || repo.lastLoginUser != user.ID {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleVerified {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != claims.ID {
		t.Fatalf("session must be keyed by the jti, got %v", sessions.generated)
	}
}

func TestLoginRejections(t *testing.T) {
	active := newTestUser(t, "shopper@example.com", "hunter22", enums.UserRoleBasic, true)
	inactive := newTestUser(t, "gone@example.com", "hunter22", enums.UserRoleBasic, false)
	repo := &stubUserRepo{byEmail: map[string]*models.User{
		active.Email:   active,
		inactive.Email: inactive,
	}}
	svc := newTestService(t, repo, &stubSessionManager{})

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "hunter22"}},
		{"wrong password", LoginRequest{Email: active.Email, Password: "wrong"}},
		{"inactive user", LoginRequest{Email: inactive.Email, Password: "hunter22"}},
		{"blank email", LoginRequest{Email: "   ", Password: "hunter22"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestRefreshSuccess(t *testing.T) {
	user := newTestUser(t, "shopper@example.com", "hunter22", enums.UserRoleAdmin, true)
	repo := &stubUserRepo{byID: map[uuid.UUID]*models.User{user.ID: user}}
	sessions := &stubSessionManager{}
	svc := newTestService(t, repo, sessions)

	oldAccessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(testJWTCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    oldAccessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-" + oldAccessID,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected rotated token pair")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID == oldAccessID {
		t.Fatal("rotated token must carry a fresh jti")
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected claims after refresh: %+v", claims)
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	user := newTestUser(t, "shopper@example.com", "hunter22", enums.UserRoleBasic, true)
	repo := &stubUserRepo{byID: map[uuid.UUID]*models.User{user.ID: user}}
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc := newTestService(t, repo, sessions)

	accessToken, err := pkgAuth.MintAccessToken(testJWTCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "forged",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshUnknownUser(t *testing.T) {
	repo := &stubUserRepo{byID: map[uuid.UUID]*models.User{}}
	svc := newTestService(t, repo, &stubSessionManager{})

	accessToken, err := pkgAuth.MintAccessToken(testJWTCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ghost@example.com",
		Role:   enums.UserRoleBasic,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "anything",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for orphaned token, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-123" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), " ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}
