package helpers

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Cursor is the opaque pagination token for keyset listings: the (timestamp,
// id) pair of the last row of the previous page, base64-encoded.
type Cursor struct {
	LoggedAt time.Time `json:"logged_at"`
	ID       string    `json:"id"`
}

// EncodeCursor serializes a cursor for the client.
func EncodeCursor(loggedAt time.Time, id string) string {
	b, _ := json.Marshal(Cursor{LoggedAt: loggedAt, ID: id})
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeCursor parses an opaque cursor. Any decode failure returns ok=false;
// callers treat that as "start from the beginning" rather than erroring.
func DecodeCursor(s string) (Cursor, bool) {
	if s == "" {
		return Cursor{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, false
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, false
	}
	if c.LoggedAt.IsZero() || c.ID == "" {
		return Cursor{}, false
	}
	// The id is bound to a uuid column downstream; reject anything else here
	// so a tampered cursor restarts the listing instead of failing the query.
	if _, err := uuid.Parse(c.ID); err != nil {
		return Cursor{}, false
	}
	return c, true
}
