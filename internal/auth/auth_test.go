package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyshop/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	tok, err := m.Generate(domain.User{ID: 7, Username: "alice", Role: domain.RoleAdmin})
	require.NoError(t, err)

	p, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: 7, Username: "alice", Role: domain.RoleAdmin}, p)
}

func TestTokenUniqueIDs(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	u := domain.User{ID: 1, Username: "bob", Role: domain.RoleUser}
	a, err := m.Generate(u)
	require.NoError(t, err)
	b, err := m.Generate(u)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseRejectsTampered(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	tok, err := m.Generate(domain.User{ID: 2, Username: "eve", Role: domain.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	_, err = m.Parse(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewManager("another-secret-another-secret!!", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager(testSecret, time.Minute)
	past := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return past }
	tok, err := m.Generate(domain.User{ID: 3, Username: "old", Role: domain.RoleUser})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHasRole(t *testing.T) {
	admin := domain.Principal{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	user := domain.Principal{UserID: 2, Username: "joe", Role: domain.RoleUser}

	assert.True(t, HasRole(admin, domain.RoleAdmin))
	assert.False(t, HasRole(user, domain.RoleAdmin))
	assert.True(t, HasRole(user, domain.RoleUser))
	assert.False(t, HasRole(domain.Principal{}, domain.RoleAdmin))
	assert.False(t, HasRole(domain.Principal{Role: domain.RoleAdmin}, domain.RoleAdmin))
	assert.False(t, HasRole(admin, ""))
}
