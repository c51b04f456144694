package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/internal/events"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyCompleted  = errors.New("challenge already completed today")
)

// ChallengeService creates challenges and records daily completions.
type ChallengeService struct {
	Challenges repo.ChallengeRepository
	Users      repo.UserRepository
	Bus        *events.Bus
	Logger     *logrus.Logger
	Now        func() time.Time
}

func NewChallengeService(challenges repo.ChallengeRepository, users repo.UserRepository, bus *events.Bus, logger *logrus.Logger) *ChallengeService {
	return &ChallengeService{Challenges: challenges, Users: users, Bus: bus, Logger: logger, Now: time.Now}
}

// CreateInput carries the fields of a new tenant challenge.
type CreateInput struct {
	Title       string
	Description string
	Category    entity.ChallengeCategory
	XPReward    int
}

// Create adds a tenant-scoped challenge (managers/admins only, enforced at
// the HTTP layer).
func (s *ChallengeService) Create(ctx context.Context, tenantID string, in CreateInput) (*entity.Challenge, error) {
	c := &entity.Challenge{
		TenantID:    tenantID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		XPReward:    in.XPReward,
		IsGlobal:    false,
	}
	if err := s.Challenges.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"challenge": c.Title, "tenant_id": tenantID}).Info("challenge created")
	}
	return c, nil
}

// Daily lists the challenges still available to the user today: global plus
// tenant-owned, minus those already completed this UTC day.
func (s *ChallengeService) Daily(ctx context.Context, userID, tenantID string) ([]*entity.Challenge, error) {
	all, err := s.Challenges.ListForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	doneIDs, err := s.Challenges.CompletedOn(ctx, userID, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	available := make([]*entity.Challenge, 0, len(all))
	for _, c := range all {
		if !done[c.ID] {
			available = append(available, c)
		}
	}
	return available, nil
}

// CompletionResult reports the outcome of completing a challenge.
type CompletionResult struct {
	Challenge *entity.Challenge `json:"challenge"`
	XPEarned  int               `json:"xp_earned"`
	TotalXP   int               `json:"total_xp"`
	NewLevel  int               `json:"new_level"`
}

// Complete records a completion, then emits ChallengeCompleted so the
// gamification pipeline can award XP and check badges. One completion per
// challenge per UTC day.
func (s *ChallengeService) Complete(ctx context.Context, userID, challengeID string) (*CompletionResult, error) {
	c, err := s.Challenges.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	now := s.Now().UTC()
	done, err := s.Challenges.HasCompletedOn(ctx, userID, challengeID, now)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyCompleted
	}

	if err := s.Challenges.RecordCompletion(ctx, &entity.ChallengeCompletion{
		UserID:      userID,
		ChallengeID: challengeID,
		CompletedAt: now,
	}); err != nil {
		return nil, err
	}

	if s.Bus != nil {
		s.Bus.PublishChallengeCompleted(ctx, events.ChallengeCompleted{
			UserID:      userID,
			ChallengeID: challengeID,
			XP:          c.XPReward,
		})
	}

	// Re-read so the response reflects the XP the event listener just added.
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"challenge": c.Title, "user_id": userID}).Info("challenge completed")
	}
	return &CompletionResult{Challenge: c, XPEarned: c.XPReward, TotalXP: u.XP, NewLevel: u.Level}, nil
}
