package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager handles generation and validation of JWT tokens. A single
// signing secret covers both token kinds; the TTLs differ. Now is injectable
// so expiry behaviour can be tested deterministically.
type JWTManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Now:        time.Now,
	}
}

// Claims carry user identity inside both access and refresh tokens.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

func (m *JWTManager) generate(userID, email, role, tenantID string, ttl time.Duration) (string, time.Time, error) {
	now := m.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		Email:    email,
		Role:     role,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *JWTManager) GenerateAccessToken(userID, email, role, tenantID string) (string, time.Time, error) {
	return m.generate(userID, email, role, tenantID, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(userID, email, role, tenantID string) (string, time.Time, error) {
	return m.generate(userID, email, role, tenantID, m.RefreshTTL)
}

// Parse validates the signature and expiry and returns the claims. It rejects
// any signing method other than HMAC.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.Now() }))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
