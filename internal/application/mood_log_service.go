package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/internal/events"
	"github.com/lifesync/lifesync/pkg/helpers"
)

const (
	historyDefaultLimit = 7
	historyMaxLimit     = 30
)

// MoodLogService handles daily check-ins and paged history.
type MoodLogService struct {
	Logs   repo.MoodLogRepository
	Bus    *events.Bus
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewMoodLogService(logs repo.MoodLogRepository, bus *events.Bus, logger *logrus.Logger) *MoodLogService {
	return &MoodLogService{Logs: logs, Bus: bus, Logger: logger, Now: time.Now}
}

// MoodLogView is the API projection of a mood log.
type MoodLogView struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Mood     int      `json:"mood"`
	Tags     []string `json:"tags"`
	Note     string   `json:"note"`
	LoggedAt string   `json:"logged_at"`
	XPEarned int      `json:"xp_earned,omitempty"`
}

func moodView(m *entity.MoodLog, xp int) MoodLogView {
	return MoodLogView{
		ID:       m.ID,
		UserID:   m.UserID,
		Mood:     m.Mood,
		Tags:     helpers.StringToTags(m.Tags),
		Note:     m.Note,
		LoggedAt: m.LoggedAt.UTC().Format(time.RFC3339),
		XPEarned: xp,
	}
}

// Log records today's mood. A second submission on the same UTC day updates
// the existing log instead of creating another. Either way a MoodLogged
// event fires so gamification can award XP.
func (s *MoodLogService) Log(ctx context.Context, userID string, mood int, tags []string, note string) (MoodLogView, error) {
	now := s.Now().UTC()
	tagString := helpers.TagsToString(tags)

	existing, err := s.Logs.FindByUserAndDay(ctx, userID, now)
	switch {
	case err == nil:
		existing.Mood = mood
		existing.Tags = tagString
		existing.Note = note
		if err := s.Logs.Update(ctx, existing); err != nil {
			return MoodLogView{}, err
		}
		if s.Logger != nil {
			s.Logger.WithField("user_id", userID).Info("mood log updated")
		}
	case errors.Is(err, repo.ErrNotFound):
		existing = &entity.MoodLog{UserID: userID, Mood: mood, Tags: tagString, Note: note, LoggedAt: now}
		if err := s.Logs.Create(ctx, existing); err != nil {
			return MoodLogView{}, err
		}
		if s.Logger != nil {
			s.Logger.WithField("user_id", userID).Info("mood log created")
		}
	default:
		return MoodLogView{}, err
	}

	if s.Bus != nil {
		s.Bus.PublishMoodLogged(ctx, events.MoodLogged{
			UserID:    userID,
			MoodLogID: existing.ID,
			XP:        entity.MoodLogXP,
		})
	}
	return moodView(existing, entity.MoodLogXP), nil
}

// HistoryPage is one page of mood history plus the cursor for the next.
type HistoryPage struct {
	Data       []MoodLogView `json:"data"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// History pages backwards through a user's logs. A malformed cursor starts
// from the newest log rather than erroring.
func (s *MoodLogService) History(ctx context.Context, userID string, limit int, cursor string) (HistoryPage, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	var cursorTime time.Time
	var cursorID string
	if c, ok := helpers.DecodeCursor(cursor); ok {
		cursorTime = c.LoggedAt
		cursorID = c.ID
	}

	logs, err := s.Logs.History(ctx, userID, limit, cursorTime, cursorID)
	if err != nil {
		return HistoryPage{}, err
	}

	page := HistoryPage{Data: make([]MoodLogView, 0, len(logs))}
	for _, m := range logs {
		page.Data = append(page.Data, moodView(m, 0))
	}
	if len(logs) == limit {
		last := logs[len(logs)-1]
		page.NextCursor = helpers.EncodeCursor(last.LoggedAt, last.ID)
	}
	return page, nil
}
