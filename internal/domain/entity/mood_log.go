package entity

import "time"

// MoodLog is a daily mood check-in. At most one log exists per user per
// calendar day (UTC); re-submitting the same day updates the existing row.
type MoodLog struct {
	ID        string
	UserID    string
	Mood      int    // 1..5
	Tags      string // lowercased, comma-joined
	Note      string
	LoggedAt  time.Time
	CreatedAt time.Time
}

// MoodLogXP is the XP awarded for a daily check-in.
const MoodLogXP = 5
