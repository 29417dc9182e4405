package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rickychen930/sing4you-sub002/internal/apperr"
)

// ErrInvalidToken is the single error every verification failure collapses
// to. Whether the signature was bad, the token expired or the string was
// garbage is never revealed to the caller.
var ErrInvalidToken = apperr.New(apperr.Unauthorized, "invalid or expired token")

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256-signed access and refresh tokens.
// The two token kinds use distinct secrets so one can never stand in for
// the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) IssueAccessToken(userID, email string) (string, error) {
	return t.sign(userID, email, t.accessSecret, t.accessTTL)
}

func (t *TokenIssuer) IssueRefreshToken(userID, email string) (string, error) {
	return t.sign(userID, email, t.refreshSecret, t.refreshTTL)
}

func (t *TokenIssuer) VerifyAccessToken(raw string) (*Claims, error) {
	return t.verify(raw, t.accessSecret)
}

func (t *TokenIssuer) VerifyRefreshToken(raw string) (*Claims, error) {
	return t.verify(raw, t.refreshSecret)
}

func (t *TokenIssuer) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (t *TokenIssuer) verify(raw string, secret []byte) (*Claims, error) {
	keyFunc := func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
