package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/internal/events"
	"github.com/lifesync/lifesync/pkg/helpers"
	"github.com/lifesync/lifesync/pkg/mailer"
)

// GamificationService is the event listener behind XP and badges. It never
// fails the triggering request: award errors are logged and swallowed.
type GamificationService struct {
	Users      repo.UserRepository
	Badges     repo.BadgeRepository
	MoodLogs   repo.MoodLogRepository
	Challenges repo.ChallengeRepository
	Logger     *logrus.Logger
	Notify     *helpers.RabbitPublisher // optional; badge emails
}

func NewGamificationService(users repo.UserRepository, badges repo.BadgeRepository, moodLogs repo.MoodLogRepository, challenges repo.ChallengeRepository, logger *logrus.Logger) *GamificationService {
	return &GamificationService{Users: users, Badges: badges, MoodLogs: moodLogs, Challenges: challenges, Logger: logger}
}

var _ events.Listener = (*GamificationService)(nil)

func (s *GamificationService) OnMoodLogged(ctx context.Context, ev events.MoodLogged) {
	s.addXP(ctx, ev.UserID, ev.XP)

	count, err := s.MoodLogs.CountByUser(ctx, ev.UserID)
	if err != nil {
		s.warn(err, ev.UserID, "count mood logs failed")
		return
	}
	if count == 1 {
		s.award(ctx, ev.UserID, entity.BadgeFirstStep)
	}
}

func (s *GamificationService) OnChallengeCompleted(ctx context.Context, ev events.ChallengeCompleted) {
	s.addXP(ctx, ev.UserID, ev.XP)

	completed, err := s.Challenges.CountCompletions(ctx, ev.UserID)
	if err != nil {
		s.warn(err, ev.UserID, "count completions failed")
		return
	}
	if completed >= entity.WellnessMasterMinimum {
		s.award(ctx, ev.UserID, entity.BadgeWellnessMaster)
	}
}

func (s *GamificationService) addXP(ctx context.Context, userID string, amount int) {
	if amount <= 0 {
		return
	}
	xp, level, err := s.Users.AddXP(ctx, userID, amount)
	if err != nil {
		s.warn(err, userID, "add xp failed")
		return
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "xp": xp, "level": level}).Infof("user gained %d XP", amount)
	}
}

// award grants the named badge once; re-awards are silent no-ops.
func (s *GamificationService) award(ctx context.Context, userID, name string) {
	b := &entity.Badge{UserID: userID, Name: name, Description: entity.BadgeDescription(name)}
	created, err := s.Badges.Award(ctx, b)
	if err != nil {
		s.warn(err, userID, "award badge failed")
		return
	}
	if !created {
		return
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "badge": name}).Info("badge awarded")
	}
	if s.Notify == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	job := mailer.NotificationJob{
		To:       u.Email,
		Template: mailer.TemplateBadgeAwarded,
		Data:     map[string]any{"Name": u.Name, "BadgeName": name, "BadgeDescription": b.Description},
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil {
		s.warn(err, userID, "enqueue badge email failed")
	}
}

func (s *GamificationService) warn(err error, userID, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn(msg)
	}
}
