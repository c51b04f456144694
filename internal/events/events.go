// Package events is the in-process boundary between feature services and the
// gamification pipeline. Payloads are plain structs and listeners implement a
// typed interface, so the compiler checks every event shape end to end.
package events

import "context"

// MoodLogged fires after a mood check-in is created or updated for the day.
type MoodLogged struct {
	UserID    string
	MoodLogID string
	XP        int
}

// ChallengeCompleted fires after a challenge completion is recorded.
type ChallengeCompleted struct {
	UserID      string
	ChallengeID string
	XP          int
}

// Listener receives domain events. Implementations must tolerate redelivery:
// the bus offers no deduplication.
type Listener interface {
	OnMoodLogged(ctx context.Context, ev MoodLogged)
	OnChallengeCompleted(ctx context.Context, ev ChallengeCompleted)
}
