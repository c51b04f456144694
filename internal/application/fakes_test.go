package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
)

// In-memory repositories backing the service tests.

type memTenants struct {
	byID     map[string]*entity.Tenant
	byDomain map[string]*entity.Tenant
}

func newMemTenants(tenants ...*entity.Tenant) *memTenants {
	m := &memTenants{byID: map[string]*entity.Tenant{}, byDomain: map[string]*entity.Tenant{}}
	for _, t := range tenants {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		m.byID[t.ID] = t
		m.byDomain[t.Domain] = t
	}
	return m
}

func (m *memTenants) GetByDomain(_ context.Context, domain string) (*entity.Tenant, error) {
	if t, ok := m.byDomain[domain]; ok {
		return t, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	if t, ok := m.byID[id]; ok {
		return t, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memTenants) Create(_ context.Context, t *entity.Tenant) error {
	if _, ok := m.byDomain[t.Domain]; ok {
		return repo.ErrConflict
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.byID[t.ID] = t
	m.byDomain[t.Domain] = t
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*entity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.TenantID == u.TenantID && existing.Email == u.Email {
			return repo.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByEmailAndTenant(_ context.Context, email, tenantID string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.TenantID == tenantID && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) List(_ context.Context, tenantID string, f repo.UserListFilter) ([]*entity.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*entity.User
	for _, u := range m.byID {
		if u.TenantID != tenantID {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := len(all)
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memUsers) Ranking(_ context.Context, tenantID string, limit int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*entity.User
	for _, u := range m.byID {
		if u.TenantID == tenantID {
			cp := *u
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].XP > all[j].XP })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memUsers) CountByTenant(_ context.Context, tenantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.byID {
		if u.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) UpdateRefreshFingerprint(_ context.Context, userID, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshFingerprint = fingerprint
	return nil
}

func (m *memUsers) RotateRefreshFingerprint(_ context.Context, userID, prev, next string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return false, nil
	}
	if u.RefreshFingerprint != prev {
		return false, nil
	}
	u.RefreshFingerprint = next
	return true, nil
}

func (m *memUsers) AddXP(_ context.Context, userID string, amount int) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return 0, 0, repo.ErrNotFound
	}
	u.XP += amount
	u.Level = entity.LevelForXP(u.XP)
	return u.XP, u.Level, nil
}

type memMoodLogs struct {
	logs  []*entity.MoodLog
	users *memUsers // for tenant scoping in MoodsForTenant
}

func newMemMoodLogs(users *memUsers) *memMoodLogs {
	return &memMoodLogs{users: users}
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (m *memMoodLogs) Create(_ context.Context, l *entity.MoodLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	cp := *l
	m.logs = append(m.logs, &cp)
	return nil
}

func (m *memMoodLogs) Update(_ context.Context, l *entity.MoodLog) error {
	for i, existing := range m.logs {
		if existing.ID == l.ID {
			cp := *l
			m.logs[i] = &cp
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memMoodLogs) FindByUserAndDay(_ context.Context, userID string, day time.Time) (*entity.MoodLog, error) {
	for _, l := range m.logs {
		if l.UserID == userID && sameUTCDay(l.LoggedAt, day) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memMoodLogs) History(_ context.Context, userID string, limit int, cursorTime time.Time, cursorID string) ([]*entity.MoodLog, error) {
	var mine []*entity.MoodLog
	for _, l := range m.logs {
		if l.UserID != userID {
			continue
		}
		if !cursorTime.IsZero() {
			if l.LoggedAt.After(cursorTime) {
				continue
			}
			if l.LoggedAt.Equal(cursorTime) && l.ID >= cursorID {
				continue
			}
		}
		cp := *l
		mine = append(mine, &cp)
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].LoggedAt.Equal(mine[j].LoggedAt) {
			return mine[i].LoggedAt.After(mine[j].LoggedAt)
		}
		return mine[i].ID > mine[j].ID
	})
	if limit > 0 && len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (m *memMoodLogs) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, l := range m.logs {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memMoodLogs) MoodsForTenant(_ context.Context, tenantID string, from, to time.Time) ([]repo.TenantMood, error) {
	var out []repo.TenantMood
	for _, l := range m.logs {
		u, ok := m.users.byID[l.UserID]
		if !ok || u.TenantID != tenantID {
			continue
		}
		if !from.IsZero() && l.LoggedAt.Before(from) {
			continue
		}
		if !to.IsZero() && l.LoggedAt.After(to) {
			continue
		}
		out = append(out, repo.TenantMood{Mood: l.Mood, UserID: l.UserID})
	}
	return out, nil
}

type memChallenges struct {
	byID        map[string]*entity.Challenge
	completions []*entity.ChallengeCompletion
}

func newMemChallenges(challenges ...*entity.Challenge) *memChallenges {
	m := &memChallenges{byID: map[string]*entity.Challenge{}}
	for _, c := range challenges {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		m.byID[c.ID] = c
	}
	return m
}

func (m *memChallenges) Create(_ context.Context, c *entity.Challenge) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memChallenges) GetByID(_ context.Context, id string) (*entity.Challenge, error) {
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memChallenges) ListForTenant(_ context.Context, tenantID string) ([]*entity.Challenge, error) {
	var out []*entity.Challenge
	for _, c := range m.byID {
		if c.IsGlobal || c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].XPReward > out[j].XPReward
	})
	return out, nil
}

func (m *memChallenges) CompletedOn(_ context.Context, userID string, day time.Time) ([]string, error) {
	var ids []string
	for _, c := range m.completions {
		if c.UserID == userID && sameUTCDay(c.CompletedAt, day) {
			ids = append(ids, c.ChallengeID)
		}
	}
	return ids, nil
}

func (m *memChallenges) HasCompletedOn(_ context.Context, userID, challengeID string, day time.Time) (bool, error) {
	for _, c := range m.completions {
		if c.UserID == userID && c.ChallengeID == challengeID && sameUTCDay(c.CompletedAt, day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memChallenges) RecordCompletion(_ context.Context, c *entity.ChallengeCompletion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	m.completions = append(m.completions, &cp)
	return nil
}

func (m *memChallenges) CountCompletions(_ context.Context, userID string) (int, error) {
	n := 0
	for _, c := range m.completions {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memBadges struct {
	badges []*entity.Badge
}

func newMemBadges() *memBadges {
	return &memBadges{}
}

func (m *memBadges) Award(_ context.Context, b *entity.Badge) (bool, error) {
	for _, existing := range m.badges {
		if existing.UserID == b.UserID && existing.Name == b.Name {
			return false, nil
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	cp := *b
	m.badges = append(m.badges, &cp)
	return true, nil
}

func (m *memBadges) ListByUser(_ context.Context, userID string) ([]*entity.Badge, error) {
	var out []*entity.Badge
	for _, b := range m.badges {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBadges) names(userID string) []string {
	var out []string
	for _, b := range m.badges {
		if b.UserID == userID {
			out = append(out, b.Name)
		}
	}
	return out
}
