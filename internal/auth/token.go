package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// purposeAccess marks bearer tokens issued at login.
	purposeAccess = "access"
	// purposeReset marks short-lived password recovery tokens.
	purposeReset = "reset"
)

// signingMethod is fixed; tokens signed with anything else are rejected.
var signingMethod = jwt.SigningMethodHS256

// ErrTokenInvalid is returned for any token that fails signature,
// expiration, structure or purpose checks.
var ErrTokenInvalid = errors.New("auth: invalid token")

// TokenClaims is the claim set carried by every token the API issues.
type TokenClaims struct {
	Purpose string `json:"tok,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single process-wide secret.
// It is safe for concurrent use; the secret is read-only after construction.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec from the shared signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// IssueAccess produces a signed bearer token for the given subject.
func (c *Codec) IssueAccess(subject string, ttl time.Duration) (string, error) {
	return c.issue(subject, purposeAccess, ttl)
}

// IssueReset produces a signed password-recovery token whose subject is
// the target email address.
func (c *Codec) IssueReset(email string, ttl time.Duration) (string, error) {
	return c.issue(email, purposeReset, ttl)
}

func (c *Codec) issue(subject, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, TokenClaims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, expiration and algorithm, returning the
// embedded claims. Any failure collapses into ErrTokenInvalid.
func (c *Codec) decode(raw, purpose string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// DecodeAccess verifies a bearer token and returns its claims.
func (c *Codec) DecodeAccess(raw string) (*TokenClaims, error) {
	return c.decode(raw, purposeAccess)
}

// DecodeReset verifies a password-recovery token and returns its claims.
func (c *Codec) DecodeReset(raw string) (*TokenClaims, error) {
	return c.decode(raw, purposeReset)
}
