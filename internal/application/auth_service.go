package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/pkg/helpers"
	"github.com/lifesync/lifesync/pkg/mailer"
)

var (
	// ErrTenantNotFound is only ever surfaced on register; login folds an
	// unknown tenant into ErrInvalidCredentials to prevent enumeration.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrEmailConflict means the email is already registered under the tenant.
	ErrEmailConflict = errors.New("email already exists in this tenant")

	// ErrInvalidCredentials covers bad passwords, unknown users, unknown
	// tenants on login, and invalid, expired, replayed or revoked refresh
	// tokens. Callers cannot distinguish which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenPair is the access/refresh pair returned by every successful
// register, login and refresh. Tokens are stateless; only the refresh
// token's fingerprint is persisted.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// UserView is the public projection of a user returned by auth endpoints.
type UserView struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
	XP    int         `json:"xp"`
	Level int         `json:"level"`
}

func viewOf(u *entity.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, XP: u.XP, Level: u.Level}
}

// AuthService orchestrates register/login/refresh/logout and owns
// refresh-token rotation. Session state per user is the single stored
// fingerprint: set on issue, replaced on rotation, cleared on logout.
type AuthService struct {
	Tenants repo.TenantRepository
	Users   repo.UserRepository
	Hasher  *helpers.Hasher
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Notify  *helpers.RabbitPublisher // optional; welcome email on register
	Indexer *UserIndexer             // optional; search index on register
}

func NewAuthService(tenants repo.TenantRepository, users repo.UserRepository, hasher *helpers.Hasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Tenants: tenants, Users: users, Hasher: hasher, JWT: jwt, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueTokens generates a fresh pair and persists the refresh fingerprint,
// unconditionally replacing whatever session the user had.
func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, string(u.Role), u.TenantID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, string(u.Role), u.TenantID)
	if err != nil {
		return TokenPair{}, err
	}
	fp, err := s.Hasher.HashTokenFingerprint(refresh)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Users.UpdateRefreshFingerprint(ctx, u.ID, fp); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Register creates an EMPLOYEE under the tenant resolved from tenantDomain
// and logs the new user in.
func (s *AuthService) Register(ctx context.Context, tenantDomain, name, email, password string) (UserView, TokenPair, error) {
	tenant, err := s.Tenants.GetByDomain(ctx, tenantDomain)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserView{}, TokenPair{}, ErrTenantNotFound
		}
		return UserView{}, TokenPair{}, err
	}

	email = normalizeEmail(email)
	if _, err := s.Users.GetByEmailAndTenant(ctx, email, tenant.ID); err == nil {
		return UserView{}, TokenPair{}, ErrEmailConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserView{}, TokenPair{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return UserView{}, TokenPair{}, err
	}

	u := &entity.User{
		TenantID:     tenant.ID,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         entity.RoleEmployee,
		XP:           0,
		Level:        1,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Concurrent registration of the same email loses to the unique
		// constraint rather than to the lookup above.
		if errors.Is(err, repo.ErrConflict) {
			return UserView{}, TokenPair{}, ErrEmailConflict
		}
		return UserView{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return UserView{}, TokenPair{}, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "tenant": tenant.Domain}).Info("user registered")
	}
	if s.Notify != nil {
		job := mailer.NotificationJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Name": u.Name, "TenantName": tenant.Name, "AppName": "LifeSync"},
		}
		if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("enqueue welcome email failed")
		}
	}
	if s.Indexer != nil {
		_ = s.Indexer.Index(ctx, u)
	}

	return viewOf(u), pair, nil
}

// Login validates credentials and rotates the session. All failure paths
// return the same error and nothing else about which check failed.
func (s *AuthService) Login(ctx context.Context, tenantDomain, email, password string) (UserView, TokenPair, error) {
	tenant, err := s.Tenants.GetByDomain(ctx, tenantDomain)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserView{}, TokenPair{}, ErrInvalidCredentials
		}
		return UserView{}, TokenPair{}, err
	}

	u, err := s.Users.GetByEmailAndTenant(ctx, normalizeEmail(email), tenant.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserView{}, TokenPair{}, ErrInvalidCredentials
		}
		return UserView{}, TokenPair{}, err
	}
	if u.PasswordHash == "" || !s.Hasher.Compare(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"email": email, "tenant": tenantDomain}).Warn("failed login attempt")
		}
		return UserView{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return UserView{}, TokenPair{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return viewOf(u), pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair and rotates the
// stored fingerprint, so the presented token is single-use. Replayed tokens
// (superseded by a later refresh), revoked sessions and rotation races all
// come back as ErrInvalidCredentials.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.Parse(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if u.RefreshFingerprint == "" {
		// Logged out since the token was issued.
		return TokenPair{}, ErrInvalidCredentials
	}
	if !s.Hasher.CompareTokenFingerprint(u.RefreshFingerprint, refreshToken) {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("stale refresh token presented")
		}
		return TokenPair{}, ErrInvalidCredentials
	}

	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, string(u.Role), u.TenantID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email, string(u.Role), u.TenantID)
	if err != nil {
		return TokenPair{}, err
	}
	fp, err := s.Hasher.HashTokenFingerprint(refresh)
	if err != nil {
		return TokenPair{}, err
	}

	// Conditional swap: only the first of two concurrent refreshes with the
	// same token gets a new pair.
	ok, err := s.Users.RotateRefreshFingerprint(ctx, u.ID, u.RefreshFingerprint, fp)
	if err != nil {
		return TokenPair{}, err
	}
	if !ok {
		return TokenPair{}, ErrInvalidCredentials
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Logout revokes the user's session by clearing the stored fingerprint.
// Idempotent: logging out twice, or while logged out, still succeeds.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Users.UpdateRefreshFingerprint(ctx, userID, ""); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", userID).Info("user logged out")
	}
	return nil
}
