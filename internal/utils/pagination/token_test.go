package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(Cursor{CreatedAt: createdAt, ID: "evt-42"})
	assert.NotEmpty(t, token, "Token should not be empty")

	c, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(c.CreatedAt))
	assert.Equal(t, "evt-42", c.ID)
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("no-separator")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("yesterday|evt-1")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestCursorAfter(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Cursor{CreatedAt: t0, ID: "m"}

	assert.True(t, c.After(t0.Add(-time.Second), "z"))
	assert.False(t, c.After(t0.Add(time.Second), "a"))
	assert.True(t, c.After(t0, "a"))
	assert.False(t, c.After(t0, "m"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0, 50, 200))
	assert.Equal(t, 200, ClampLimit(500, 50, 200))
	assert.Equal(t, 10, ClampLimit(10, 50, 200))
}
