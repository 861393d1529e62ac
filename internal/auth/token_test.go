package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/config"
	"crmapi/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(now time.Time) *TokenManager {
	m, err := NewTokenManager(config.AuthConfig{
		JWTSecret:  testSecret,
		Issuer:     "crmapi",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	if err != nil {
		panic(err)
	}
	m.now = func() time.Time { return now }
	return m
}

func TestNewTokenManager_RejectsWeakSecret(t *testing.T) {
	for _, secret := range []string{"", "short", testSecret[:MinSecretLength-1]} {
		m, err := NewTokenManager(config.AuthConfig{JWTSecret: secret, Issuer: "crmapi", AccessTTL: time.Minute})
		assert.ErrorIs(t, err, ErrWeakSecret)
		assert.Nil(t, m)
	}

	m, err := NewTokenManager(config.AuthConfig{JWTSecret: testSecret, Issuer: "crmapi", AccessTTL: time.Minute})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestTokenManager_RejectsEmptyKeySignature(t *testing.T) {
	m := newTestManager(time.Now())
	now := time.Now()
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "mallory",
		Type:     AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "crmapi",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	s, err := forged.SignedString([]byte{})
	require.NoError(t, err)

	_, err = m.Parse(s, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	u := &model.User{ID: 42, Username: "ada"}

	pair, err := m.Issue(u)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	access, err := m.Parse(pair.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada", access.Username)
	id, err := access.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.WithinDuration(t, now.Add(5*time.Minute), access.ExpiresAt.Time, time.Second)

	refresh, err := m.Parse(pair.Refresh, RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refresh.ID)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestTokenManager_ParseRejects(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	pair, err := m.Issue(&model.User{ID: 1, Username: "ada"})
	require.NoError(t, err)

	t.Run("wrong type", func(t *testing.T) {
		_, err := m.Parse(pair.Access, RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestManager(now.Add(10 * time.Minute))
		_, err := later.Parse(pair.Access, AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := newTestManager(now)
		other.secret = []byte("another-secret")
		_, err := other.Parse(pair.Access, AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := newTestManager(now)
		other.issuer = "someone-else"
		_, err := other.Parse(pair.Access, AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Type: AccessToken})
		s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Parse(s, AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token", AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenManager_IssueAccess(t *testing.T) {
	m := newTestManager(time.Now())
	pair, err := m.Issue(&model.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	refresh, err := m.Parse(pair.Refresh, RefreshToken)
	require.NoError(t, err)

	access, err := m.IssueAccess(refresh)
	require.NoError(t, err)

	claims, err := m.Parse(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "bob", claims.Username)
}
