package pagination

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
)

func TestCursorRoundTrip(t *testing.T) {
	// database rounds to microsecond
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)
	c := Cursor{CreatedAt: ts, Id: uuid.New()}

	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	assert.True(t, decoded.CreatedAt.Equal(c.CreatedAt))
	assert.Equal(t, c.Id, decoded.Id)
}

func TestRankedCursorRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)
	c := RankedCursor{Score: 42, CreatedAt: ts, Id: uuid.New()}

	decoded, err := DecodeRankedCursor(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c.Score, decoded.Score)
	assert.True(t, decoded.CreatedAt.Equal(c.CreatedAt))
	assert.Equal(t, c.Id, decoded.Id)
}

func TestDecodeRankedCursorRequiresScore(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)
	id := uuid.New()

	// a chronological token carries no score field; treating it as a
	// ranked cursor with score 0 would hide every scored post
	token := Cursor{CreatedAt: ts, Id: id}.Encode()
	_, err := DecodeRankedCursor(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidCursor)

	t.Run("explicit zero score is valid", func(t *testing.T) {
		token := RankedCursor{Score: 0, CreatedAt: ts, Id: id}.Encode()
		decoded, err := DecodeRankedCursor(token)
		require.NoError(t, err)
		assert.Equal(t, int64(0), decoded.Score)
	})
}

func TestDecodeCursorMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"not json", "bm90LWpzb24"},     // "not-json"
		{"empty object", "e30"},         // "{}"
		{"wrong types", "eyJpZCI6MX0"},  // {"id":1}
		{"truncated", "eyJjcmVhdGVkQX"}, // cut mid-token
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			assert.ErrorIs(t, err, internal_errors.ErrInvalidCursor)

			_, err = DecodeRankedCursor(tt.token)
			assert.ErrorIs(t, err, internal_errors.ErrInvalidCursor)
		})
	}
}

func TestCursorLess(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Second)
	idLow := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idHigh := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	assert.True(t, Cursor{t1, idHigh}.Less(Cursor{t2, idLow}), "older timestamp sorts lower")
	assert.False(t, Cursor{t2, idLow}.Less(Cursor{t1, idHigh}))
	// timestamp tie broken by id
	assert.True(t, Cursor{t1, idLow}.Less(Cursor{t1, idHigh}))
	assert.False(t, Cursor{t1, idLow}.Less(Cursor{t1, idLow}), "strict order, not reflexive")
}

func TestRankedCursorLess(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Second)
	idLow := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idHigh := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	// score dominates
	assert.True(t, RankedCursor{1, t2, idHigh}.Less(RankedCursor{2, t1, idLow}))
	// score tie broken by createdAt
	assert.True(t, RankedCursor{2, t1, idHigh}.Less(RankedCursor{2, t2, idLow}))
	// full tie on score+createdAt broken by id
	assert.True(t, RankedCursor{2, t1, idLow}.Less(RankedCursor{2, t1, idHigh}))
}

func TestCursorJSONIncludesToken(t *testing.T) {
	c := Cursor{CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Id: uuid.New()}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "createdAt")
	assert.Contains(t, m, "id")
	require.Contains(t, m, "token")

	decoded, err := DecodeCursor(m["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, c.Id, decoded.Id)

	var back Cursor
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c.Id, back.Id)
	assert.True(t, back.CreatedAt.Equal(c.CreatedAt))
}
