// Package confirm issues the short-lived tokens that prove a destructive
// request was confirmed by the user.
package confirm

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const actionDelete = "ticket.delete"

var ErrInvalidToken = errors.New("confirm: invalid token")

// TokenManager signs and checks confirmation tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager. A non-positive ttl falls back to two minutes.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims binds a token to one action on one ticket.
type Claims struct {
	Action string `json:"act"`
	jwt.RegisteredClaims
}

// Issue signs a delete confirmation for ticketID.
func (tm *TokenManager) Issue(ticketID string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Action: actionDelete,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ticketID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify reports whether tokenStr confirms deleting ticketID.
func (tm *TokenManager) Verify(tokenStr, ticketID string) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return ErrInvalidToken
	}
	if claims.Action != actionDelete || claims.Subject != ticketID {
		return ErrInvalidToken
	}
	return nil
}
