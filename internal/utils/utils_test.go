package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        PaginationParams
	}{
		{"defaults", 0, 0, PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"second page", 2, 10, PaginationParams{Page: 2, Limit: 10, Offset: 10}},
		{"max limit", 1, 50, PaginationParams{Page: 1, Limit: 50, Offset: 0}},
		{"over max falls back", 3, 51, PaginationParams{Page: 3, Limit: 20, Offset: 40}},
		{"negative page", -4, 5, PaginationParams{Page: 1, Limit: 5, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationParams(tt.page, tt.limit))
		})
	}
}

func TestGetPaginationParams(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/projects?page=3&limit=abc", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Limit)
}

func TestTotalPages(t *testing.T) {
	p := NewPaginationParams(1, 20)
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(20))
	assert.Equal(t, 2, p.TotalPages(21))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "expensy", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "expensy", time.Hour)
	token, err := m.Generate(7)
	require.NoError(t, err)

	_, err = NewTokenManager("other", "expensy", time.Hour).Parse(token)
	assert.Error(t, err, "wrong secret")

	_, err = NewTokenManager("secret", "someone-else", time.Hour).Parse(token)
	assert.Error(t, err, "wrong issuer")

	expired := NewTokenManager("secret", "expensy", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(token)
	assert.Error(t, err, "expired")

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)
}

func TestTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", "expensy", time.Hour).Generate(1)
	assert.Error(t, err)
}

func TestGenerateConfirmationToken(t *testing.T) {
	a, err := GenerateConfirmationToken()
	require.NoError(t, err)
	b, err := GenerateConfirmationToken()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
