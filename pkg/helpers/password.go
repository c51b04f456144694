package helpers

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt with a configurable cost factor. It hashes both user
// passwords and refresh-token fingerprints.
type Hasher struct {
	Cost int
}

// NewHasher clamps cost into bcrypt's valid range; anything below 10 is
// raised to 10.
func NewHasher(cost int) *Hasher {
	if cost < 10 {
		cost = 10
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash hashes the plain text using bcrypt
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare compares a bcrypt hash with a plain value
func (h *Hasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// TokenDigest reduces a token to a fixed-size sha256 hex digest before the
// slow hash. bcrypt truncates input at 72 bytes, so hashing the raw token
// would silently ignore most of a JWT; the digest also keeps comparison cost
// independent of token length.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// HashTokenFingerprint produces the stored fingerprint for a refresh token:
// sha256 digest first, then bcrypt over the digest.
func (h *Hasher) HashTokenFingerprint(token string) (string, error) {
	return h.Hash(TokenDigest(token))
}

// CompareTokenFingerprint checks a presented refresh token against a stored
// fingerprint hash.
func (h *Hasher) CompareTokenFingerprint(stored, token string) bool {
	return h.Compare(stored, TokenDigest(token))
}
