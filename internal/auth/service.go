package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Service struct {
	users      repo.UserRepository
	issuer     *Issuer
	refresh    RefreshStore
	refreshTTL time.Duration
	log        *slog.Logger
}

func NewService(users repo.UserRepository, issuer *Issuer, refresh RefreshStore, refreshTTL time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{users: users, issuer: issuer, refresh: refresh, refreshTTL: refreshTTL, log: log}
}

func (s *Service) Issuer() *Issuer {
	return s.issuer
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a user with the given role (user when empty) and signs
// them in.
func (s *Service) Register(ctx context.Context, username, password, role string) (models.User, Tokens, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(password) < minPasswordLen {
		return models.User{}, Tokens{}, apperr.Invalid("username must have at least %d characters and password at least %d", minUsernameLen, minPasswordLen)
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.User{}, Tokens{}, apperr.Invalid("unknown role %q", role)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, Tokens{}, apperr.Internal(err, "failed to hash password")
	}

	user, err := s.users.CreateUser(ctx, models.User{Username: username, PasswordHash: hashed, Role: role})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return models.User{}, Tokens{}, apperr.Conflict("username %s already exists", username)
		}
		return models.User{}, Tokens{}, apperr.Internal(err, "failed to register user")
	}
	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (models.User, Tokens, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.User{}, Tokens{}, ErrInvalidCredentials
		}
		return models.User{}, Tokens{}, apperr.Internal(err, "failed to load user")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return models.User{}, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token: the old one is revoked and a new pair is
// issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	username, ok, err := s.refresh.LookupRefreshToken(ctx, refreshToken)
	if err != nil {
		return Tokens{}, apperr.Internal(err, "failed to look up refresh token")
	}
	if !ok {
		return Tokens{}, ErrInvalidRefreshToken
	}
	existed, err := s.refresh.RevokeRefreshToken(ctx, refreshToken)
	if err != nil {
		return Tokens{}, apperr.Internal(err, "failed to revoke refresh token")
	}
	if !existed {
		return Tokens{}, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, apperr.Internal(err, "failed to load user")
	}
	return s.issue(ctx, user)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.refresh.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return apperr.Internal(err, "failed to revoke refresh token")
	}
	return nil
}

// EnsureAdmin creates the admin account unless the username is taken.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return err
	}
	_, _, err = s.Register(ctx, username, password, models.RoleAdmin)
	if apperr.Is(err, apperr.KindConflict) {
		return nil
	}
	return err
}

func (s *Service) issue(ctx context.Context, user models.User) (Tokens, error) {
	access, err := s.issuer.GenerateToken(user)
	if err != nil {
		return Tokens{}, apperr.Internal(err, "failed to generate token")
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return Tokens{}, apperr.Internal(err, "failed to generate refresh token")
	}
	if err := s.refresh.SaveRefreshToken(ctx, refresh, user.Username, s.refreshTTL); err != nil {
		return Tokens{}, apperr.Internal(err, "failed to store refresh token")
	}
	return Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.issuer.TTL().Seconds()),
	}, nil
}
