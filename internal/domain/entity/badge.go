package entity

import "time"

// Badge names awarded by the gamification pipeline.
const (
	BadgeFirstStep        = "Primeiro Passo"
	BadgeConsistent       = "Consistente"
	BadgeDedicated        = "Dedicado"
	BadgeWellnessMaster   = "Mestre do Bem-Estar"
	WellnessMasterMinimum = 100 // completed challenges required for the master badge
)

// Badge is a named achievement. (UserID, Name) is unique; awarding the same
// badge twice is a no-op.
type Badge struct {
	ID          string
	UserID      string
	Name        string
	Description string
	IconURL     string
	AwardedAt   time.Time
}

// BadgeDescription returns the canonical description for a badge name.
func BadgeDescription(name string) string {
	switch name {
	case BadgeFirstStep:
		return "Completou o primeiro mood log"
	case BadgeConsistent:
		return "7 dias consecutivos de check-in"
	case BadgeDedicated:
		return "30 dias consecutivos de check-in"
	case BadgeWellnessMaster:
		return "100 desafios completados"
	default:
		return name
	}
}
