package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenCookie is the cookie that carries the session token between the
// browser and the server.
const TokenCookie = "token"

// TokenTTL is the validity window of an issued session token.
const TokenTTL = time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// tampered payload, wrong signature, unexpected signing algorithm or
// expiry. Callers get no further detail.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity a session token asserts.
type Claims struct {
	AccountID int64  `json:"accountId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies session tokens. It is implemented as a
// pure function pair over an immutable signing secret so signing
// algorithms can be swapped without touching the authentication gate.
type TokenCodec interface {
	Issue(accountID int64, email string) (string, error)
	Verify(token string) (*Claims, error)
}

// JWT signs session tokens with HMAC-SHA256. The secret is fixed at
// construction and never rotated mid-process, which makes the codec safe
// for concurrent use without locking.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), ttl: TokenTTL}
}

// Issue mints a signed token valid for the codec's TTL from now.
func (j *JWT) Issue(accountID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry. Any failure yields
// ErrInvalidToken; there is no partial trust.
func (j *JWT) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		// Reject anything but HMAC to prevent algorithm confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
