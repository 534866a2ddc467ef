package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/pkg/apperrors"
	"github.com/deniz/examhub/internal/pkg/auth"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

// fakeTokenStore is an in-memory TokenStore
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (s *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiry, t.revoked, nil
}

func (s *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "examhub.test",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop()), users, tokens
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.edu",
		Password: "s3curepass",
		RoleType: models.RoleStudent,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues tokens", func(t *testing.T) {
		svc, _, tokens := newTestAuthService()

		resp, err := svc.Register(ctx, registerRequest())
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.User.Role != string(models.RoleStudent) {
			t.Errorf("Role = %q, want STUDENT", resp.User.Role)
		}
		if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
			t.Error("expected both tokens to be issued")
		}
		if _, _, _, err := tokens.GetTokenByValue(ctx, resp.Token.RefreshToken); err != nil {
			t.Errorf("refresh token not persisted: %v", err)
		}
	})

	t.Run("lowercases email", func(t *testing.T) {
		svc, users, _ := newTestAuthService()

		req := registerRequest()
		req.Email = "Ada@Example.EDU"
		resp, err := svc.Register(ctx, req)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		stored, err := users.GetByID(ctx, resp.User.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if stored.Email != "ada@example.edu" {
			t.Errorf("stored email = %q, want lowercase", stored.Email)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		if _, err := svc.Register(ctx, registerRequest()); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}
		_, err := svc.Register(ctx, registerRequest())
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrEmailAlreadyExists", err)
		}
	})

	t.Run("weak passwords rejected", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		for _, password := range []string{"short1", "onlyletters", "12345678"} {
			req := registerRequest()
			req.Password = password
			if _, err := svc.Register(ctx, req); err == nil {
				t.Errorf("Register() with password %q, want error", password)
			}
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		svc, _, _ := newTestAuthService()

		req := registerRequest()
		req.RoleType = models.RoleType("ADMIN")
		if _, err := svc.Register(ctx, req); err == nil {
			t.Error("Register() with unknown role, want error")
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.edu", Password: "s3curepass"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.Token.AccessToken == "" {
			t.Error("expected access token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.edu", Password: "wrongpass1"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.edu", Password: "s3curepass"})
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	oldRefresh := registered.Token.RefreshToken

	rotated, err := svc.RefreshToken(ctx, oldRefresh)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if rotated.Token.RefreshToken == oldRefresh {
		t.Error("expected a new refresh token after rotation")
	}

	// the old token is revoked and cannot be replayed
	if _, err := svc.RefreshToken(ctx, oldRefresh); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("RefreshToken() with rotated-out token error = %v, want ErrTokenRevoked", err)
	}

	if _, err := svc.RefreshToken(ctx, "unknown-token"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("RefreshToken() with unknown token error = %v, want ErrTokenNotFound", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Logout(ctx, registered.User.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := svc.RefreshToken(ctx, registered.Token.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("RefreshToken() after logout error = %v, want ErrTokenRevoked", err)
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	registered, err := svc.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	profile, err := svc.GetProfile(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if !strings.EqualFold(profile.Email, "ada@example.edu") {
		t.Errorf("Email = %q, want ada@example.edu", profile.Email)
	}

	if _, err := svc.GetProfile(ctx, 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("GetProfile() for unknown user error = %v, want ErrUserNotFound", err)
	}
}
