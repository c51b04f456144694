package entity

import "time"

// ChallengeCategory groups challenges on the daily list.
type ChallengeCategory string

const (
	CategoryPhysical  ChallengeCategory = "PHYSICAL"
	CategoryMental    ChallengeCategory = "MENTAL"
	CategoryNutrition ChallengeCategory = "NUTRITION"
	CategorySocial    ChallengeCategory = "SOCIAL"
)

// Valid reports whether c is one of the known categories.
func (c ChallengeCategory) Valid() bool {
	switch c {
	case CategoryPhysical, CategoryMental, CategoryNutrition, CategorySocial:
		return true
	}
	return false
}

// Challenge is a wellness task users complete for XP. Global challenges are
// visible to every tenant; non-global ones only to their own tenant.
type Challenge struct {
	ID          string
	TenantID    string // empty for global challenges
	Title       string
	Description string
	Category    ChallengeCategory
	XPReward    int
	IsGlobal    bool
	CreatedAt   time.Time
}

// ChallengeCompletion records that a user completed a challenge. A user may
// complete each challenge at most once per calendar day.
type ChallengeCompletion struct {
	ID          string
	UserID      string
	ChallengeID string
	CompletedAt time.Time
}
