// Package pagination implements keyset pagination primitives: the opaque
// cursor codec and the limit+1 page assembly shared by every feed.
package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
)

// Cursor is the sort-key tuple of chronological feeds: (createdAt, id),
// ordered descending. The id breaks timestamp ties so the tuple is a
// strict total order over any result set.
type Cursor struct {
	CreatedAt time.Time
	Id        uuid.UUID
}

// RankedCursor is the sort-key tuple of the popularity feed:
// (score, createdAt, id), ordered descending.
type RankedCursor struct {
	Score     int64
	CreatedAt time.Time
	Id        uuid.UUID
}

// wire forms: only already-public fields (timestamp, public id, score)
// end up in tokens and responses.
type cursorWire struct {
	CreatedAt time.Time `json:"createdAt"`
	Id        uuid.UUID `json:"id"`
}

type rankedCursorWire struct {
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	Id        uuid.UUID `json:"id"`
}

// rankedCursorToken is the decode side of rankedCursorWire. Score is a
// pointer so an absent field is distinguishable from a legitimate zero
// score; a chronological token must not pass as a ranked one.
type rankedCursorToken struct {
	Score     *int64    `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	Id        uuid.UUID `json:"id"`
}

// Less reports whether c sorts strictly after o in the descending feed
// order, i.e. c's tuple is lexicographically smaller. Uuids compare
// bytewise, matching postgres uuid ordering.
func (c Cursor) Less(o Cursor) bool {
	if !c.CreatedAt.Equal(o.CreatedAt) {
		return c.CreatedAt.Before(o.CreatedAt)
	}
	return bytes.Compare(c.Id[:], o.Id[:]) < 0
}

func (c RankedCursor) Less(o RankedCursor) bool {
	if c.Score != o.Score {
		return c.Score < o.Score
	}
	if !c.CreatedAt.Equal(o.CreatedAt) {
		return c.CreatedAt.Before(o.CreatedAt)
	}
	return bytes.Compare(c.Id[:], o.Id[:]) < 0
}

// Encode serializes the cursor into an opaque url-safe token.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(cursorWire{CreatedAt: c.CreatedAt, Id: c.Id})
	return base64.RawURLEncoding.EncodeToString(b)
}

func (c RankedCursor) Encode() string {
	b, _ := json.Marshal(rankedCursorWire{Score: c.Score, CreatedAt: c.CreatedAt, Id: c.Id})
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor reverses Encode. Any malformed token yields
// errors.ErrInvalidCursor; callers degrade to a first-page request.
func DecodeCursor(token string) (Cursor, error) {
	var w cursorWire
	if err := decodeToken(token, &w); err != nil {
		return Cursor{}, err
	}
	if w.CreatedAt.IsZero() || w.Id == uuid.Nil {
		return Cursor{}, internal_errors.ErrInvalidCursor
	}
	return Cursor{CreatedAt: w.CreatedAt, Id: w.Id}, nil
}

func DecodeRankedCursor(token string) (RankedCursor, error) {
	var w rankedCursorToken
	if err := decodeToken(token, &w); err != nil {
		return RankedCursor{}, err
	}
	if w.Score == nil || w.CreatedAt.IsZero() || w.Id == uuid.Nil {
		return RankedCursor{}, internal_errors.ErrInvalidCursor
	}
	return RankedCursor{Score: *w.Score, CreatedAt: w.CreatedAt, Id: w.Id}, nil
}

func decodeToken(token string, out any) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return internal_errors.ErrInvalidCursor
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return internal_errors.ErrInvalidCursor
	}
	return nil
}

// MarshalJSON emits the split fields plus the opaque token so clients can
// pass back either form.
func (c Cursor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		cursorWire
		Token string `json:"token"`
	}{cursorWire{c.CreatedAt, c.Id}, c.Encode()})
}

func (c *Cursor) UnmarshalJSON(b []byte) error {
	var w cursorWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.CreatedAt, c.Id = w.CreatedAt, w.Id
	return nil
}

func (c RankedCursor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		rankedCursorWire
		Token string `json:"token"`
	}{rankedCursorWire{c.Score, c.CreatedAt, c.Id}, c.Encode()})
}

func (c *RankedCursor) UnmarshalJSON(b []byte) error {
	var w rankedCursorWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.Score, c.CreatedAt, c.Id = w.Score, w.CreatedAt, w.Id
	return nil
}
