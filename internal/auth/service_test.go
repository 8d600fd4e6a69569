package auth

import (
	"context"
	"testing"

	"github.com/TariqTawalbeh/employees-board/internal/users"
	pkgAuth "github.com/TariqTawalbeh/employees-board/pkg/auth"
	"github.com/TariqTawalbeh/employees-board/pkg/config"
	"github.com/TariqTawalbeh/employees-board/pkg/db/models"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/TariqTawalbeh/employees-board/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	createErr error
	created   *users.CreateUserDTO
	byEmail   map[string]*models.User
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &dto
	return &models.User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		RoleID:       dto.RoleID,
	}, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	return config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "employees-board-test",
			ExpirationMinutes: 60,
		}, config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestRegisterHashesAndNormalizes(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     " Huda ",
		Email:    " Huda@Example.COM ",
		Password: "long-enough-pw",
		RoleID:   2,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if repo.created.Email != "huda@example.com" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if repo.created.PasswordHash == "long-enough-pw" {
		t.Fatalf("password must be stored hashed")
	}
	if resp.RoleID != enums.RoleMember {
		t.Fatalf("expected member role, got %v", resp.RoleID)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "X",
		Email:    "x@example.com",
		Password: "long-enough-pw",
		RoleID:   7,
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*models.User{}}
	svc := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Round",
		Email:    "round@example.com",
		Password: "round-trip-pw",
		RoleID:   2,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.byEmail["round@example.com"] = &models.User{
		ID:           resp.ID,
		Name:         resp.Name,
		Email:        resp.Email,
		PasswordHash: repo.created.PasswordHash,
		RoleID:       resp.RoleID,
	}

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Round@Example.com",
		Password: "round-trip-pw",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgAuth.ParseAccessToken(jwtCfg, login.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != resp.ID {
		t.Fatalf("token bound to %s, expected %s", claims.UserID, resp.ID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	_, pwCfg := testConfigs()
	hash, err := security.HashPassword("correct-password", pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &stubUserRepo{byEmail: map[string]*models.User{
		"known@example.com": {
			ID:           uuid.New(),
			Email:        "known@example.com",
			PasswordHash: hash,
			RoleID:       enums.RoleMember,
		},
	}}
	svc := newTestService(t, repo)

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "missing@example.com", Password: "whatever"}},
		{"wrong password", LoginRequest{Email: "known@example.com", Password: "wrong"}},
		{"empty email", LoginRequest{Email: "", Password: "whatever"}},
		{"empty password", LoginRequest{Email: "known@example.com", Password: ""}},
	}

	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("%s: expected UNAUTHORIZED, got %v", tc.name, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("%s: message must not leak failure mode, got %q", tc.name, typed.Message())
		}
	}
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	_, pwCfg := testConfigs()
	hash, err := security.HashPassword("correct-password", pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userID := uuid.New()
	repo := &stubUserRepo{byEmail: map[string]*models.User{
		"ok@example.com": {
			ID:           userID,
			Email:        "ok@example.com",
			PasswordHash: hash,
			RoleID:       enums.RoleMember,
		},
	}}
	svc := newTestService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ok@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token in response")
	}
}
