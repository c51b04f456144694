package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/pkg/helpers"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
)

// UserService covers profiles, the tenant directory, the XP ranking and
// avatar uploads.
type UserService struct {
	Users     repo.UserRepository
	Badges    repo.BadgeRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
	Indexer   *UserIndexer
}

func NewUserService(users repo.UserRepository, badges repo.BadgeRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, indexer *UserIndexer) *UserService {
	return &UserService{Users: users, Badges: badges, GCS: gcs, GCSBucket: gcsBucket, Logger: logger, Indexer: indexer}
}

// Profile is the full self/admin view of a user, including badges.
type Profile struct {
	UserView
	AvatarURL string          `json:"avatar_url"`
	TenantID  string          `json:"tenant_id"`
	Badges    []*entity.Badge `json:"badges"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	badges, err := s.Badges.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []*entity.Badge{}
	}
	return &Profile{UserView: viewOf(u), AvatarURL: u.AvatarURL, TenantID: u.TenantID, Badges: badges}, nil
}

// UpdateProfile lets a user rename themselves; admins may rename anyone in
// their tenant.
func (s *UserService) UpdateProfile(ctx context.Context, targetID, callerID string, callerRole entity.Role, name string) (*Profile, error) {
	u, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if targetID != callerID && callerRole != entity.RoleAdmin {
		return nil, ErrForbidden
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.Indexer != nil {
		_ = s.Indexer.Index(ctx, u)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("profile updated")
	}
	return s.GetProfile(ctx, u.ID)
}

// ListUsers pages through a tenant's directory.
func (s *UserService) ListUsers(ctx context.Context, tenantID string, f repo.UserListFilter) ([]UserView, int, error) {
	users, total, err := s.Users.List(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, viewOf(u))
	}
	return out, total, nil
}

// Ranking returns the tenant's top users by XP.
func (s *UserService) Ranking(ctx context.Context, tenantID string, limit int) ([]UserView, error) {
	users, err := s.Users.Ranking(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, viewOf(u))
	}
	return out, nil
}

// UploadAvatar stores the image in GCS under avatars/<userID>/ and records
// the public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	if s.Indexer != nil {
		_ = s.Indexer.Index(ctx, u)
	}
	return url, nil
}

// SearchUsers proxies the Elasticsearch index, tenant-scoped.
func (s *UserService) SearchUsers(ctx context.Context, tenantID, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil {
		return nil, errors.New("search not configured")
	}
	return s.Indexer.Search(ctx, tenantID, q, size)
}
