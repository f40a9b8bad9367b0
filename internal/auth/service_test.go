package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/sellerbridge/sellerbridge-backend/pkg/auth"
	"github.com/sellerbridge/sellerbridge-backend/pkg/auth/session"
	"github.com/sellerbridge/sellerbridge-backend/pkg/config"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/security"
)

type stubUserRepo struct {
	user      *models.User
	lastLogin time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = at
	return nil
}

type stubSessionManager struct {
	generated []string
	revoked   []string
	rotateErr error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "new-access-id", "new-refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-0123456789",
		Issuer:                 "sellerbridge-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func newTestUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	sellerID := uuid.New()
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleSeller,
		SellerID:     &sellerID,
		IsActive:     true,
	}
}

func TestLoginIssuesScopedToken(t *testing.T) {
	user := newTestUser(t, "seller@example.com", "hunter2hunter2")
	repo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Seller@Example.com ",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.RefreshToken == "" {
		t.Fatal("missing refresh token")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session got %d", len(sessions.generated))
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatal("user id mismatch")
	}
	if claims.Role != enums.UserRoleSeller {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.SellerID == nil || *claims.SellerID != *user.SellerID {
		t.Fatal("seller binding missing from claims")
	}
	if repo.lastLogin.IsZero() {
		t.Fatal("last login not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := newTestUser(t, "seller@example.com", "hunter2hunter2")
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "seller@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := newTestUser(t, "seller@example.com", "hunter2hunter2")
	user.IsActive = false
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2hunter2",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := newTestUser(t, "seller@example.com", "hunter2hunter2")
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.RefreshToken != "new-refresh-token" {
		t.Fatalf("unexpected refresh token %s", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.ID != "new-access-id" {
		t.Fatalf("unexpected jti %s", claims.ID)
	}
	if claims.UserID != user.ID {
		t.Fatal("identity not preserved across refresh")
	}
}

func TestRefreshInvalidSession(t *testing.T) {
	user := newTestUser(t, "seller@example.com", "hunter2hunter2")
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: "stale",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("unexpected revocations %+v", sessions.revoked)
	}
}
