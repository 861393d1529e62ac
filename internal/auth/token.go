package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"crmapi/internal/config"
	"crmapi/internal/model"
)

// ErrInvalidToken is returned for tokens that are malformed, expired, wrongly signed or of the wrong type.
var ErrInvalidToken = errors.New("invalid token")

// MinSecretLength is the shortest HMAC key NewTokenManager accepts.
const MinSecretLength = 32

// ErrWeakSecret is returned when the configured signing key is empty or shorter than MinSecretLength.
var ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims are the JWT claims issued by TokenManager. Subject holds the user id.
type Claims struct {
	Username string    `json:"username"`
	Type     TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the numeric user id from the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager issues and verifies HS256 signed tokens.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a TokenManager from the auth configuration.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a fresh access and refresh token for u.
func (m *TokenManager) Issue(u *model.User) (*TokenPair, error) {
	access, err := m.sign(u.ID, u.Username, AccessToken, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(u.ID, u.Username, RefreshToken, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs a new access token for the subject of a verified refresh token.
func (m *TokenManager) IssueAccess(refresh *Claims) (string, error) {
	id, err := refresh.UserID()
	if err != nil {
		return "", err
	}
	return m.sign(id, refresh.Username, AccessToken, m.accessTTL)
}

func (m *TokenManager) sign(userID int64, username string, typ TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Username: username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return s, nil
}

// Parse verifies signature, issuer and expiry of token and checks that it is of type typ.
func (m *TokenManager) Parse(token string, typ TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, typ)
	}
	return claims, nil
}
