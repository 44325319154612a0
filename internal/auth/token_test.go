package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("  ", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrSecretMissing)
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := m.Parse(pair.Access, TokenAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := m.Parse(pair.Refresh, TokenRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refreshClaims.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	m := newTestManager(t)
	pair, err := m.Issue(1)
	require.NoError(t, err)

	_, err = m.Parse(pair.Refresh, TokenAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = m.Parse(pair.Access, TokenRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseRejectsExpired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	pair, err := m.Issue(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(pair.Access, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewTokenManager("other-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := other.Issue(1)
	require.NoError(t, err)

	_, err = m.Parse(pair.Access, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager(t)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Type: TokenAccess,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(signed, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh(t *testing.T) {
	m := newTestManager(t)
	pair, err := m.Issue(7)
	require.NoError(t, err)

	access, userID, err := m.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)

	_, err = m.Parse(access, TokenAccess)
	assert.NoError(t, err)

	_, _, err = m.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
