package tokens

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zourdycodes/authworkflow/internal/models"
)

// Verification outcomes callers can branch on. Expired and forged tokens are
// both terminal, but the user-facing message differs.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const (
	PurposeActivation = "activation"
	PurposeAccess     = "access"
	PurposeRefresh    = "refresh"
)

// Codec signs and verifies one class of bearer token against its own secret
// key and expiry window. Instances are built once at startup and shared.
type Codec struct {
	purpose string
	secret  []byte
	ttl     time.Duration
}

func NewActivation(secret string, ttl time.Duration) *Codec {
	return &Codec{purpose: PurposeActivation, secret: []byte(secret), ttl: ttl}
}

func NewAccess(secret string, ttl time.Duration) *Codec {
	return &Codec{purpose: PurposeAccess, secret: []byte(secret), ttl: ttl}
}

func NewRefresh(secret string, ttl time.Duration) *Codec {
	return &Codec{purpose: PurposeRefresh, secret: []byte(secret), ttl: ttl}
}

// TTL reports the expiry window of this token class.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// IssueSubject mints a token carrying an account id, expiring after the
// class window.
func (c *Codec) IssueSubject(id int64) (string, error) {
	claims := jwt.MapClaims{
		"sub":     id,
		"purpose": c.purpose,
		"exp":     time.Now().Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// ParseSubject verifies a subject token and returns the account id it was
// minted for.
func (c *Codec) ParseSubject(tokenStr string) (int64, error) {
	const op = "tokens.ParseSubject"

	claims, err := c.parse(tokenStr)
	if err != nil {
		return 0, err
	}

	subFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("%s: missing sub claim: %w", op, ErrTokenInvalid)
	}

	return int64(subFloat), nil
}

// IssueRegistration mints an activation token that carries the not-yet-committed
// account data as its payload.
func (c *Codec) IssueRegistration(reg models.PendingRegistration) (string, error) {
	claims := jwt.MapClaims{
		"name":    reg.Name,
		"email":   reg.Email,
		"hash":    base64.StdEncoding.EncodeToString(reg.PassHash),
		"purpose": c.purpose,
		"exp":     time.Now().Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// ParseRegistration verifies an activation token and returns the pending
// registration embedded in it.
func (c *Codec) ParseRegistration(tokenStr string) (models.PendingRegistration, error) {
	const op = "tokens.ParseRegistration"

	claims, err := c.parse(tokenStr)
	if err != nil {
		return models.PendingRegistration{}, err
	}

	name, ok := claims["name"].(string)
	if !ok {
		return models.PendingRegistration{}, fmt.Errorf("%s: missing name claim: %w", op, ErrTokenInvalid)
	}

	email, ok := claims["email"].(string)
	if !ok {
		return models.PendingRegistration{}, fmt.Errorf("%s: missing email claim: %w", op, ErrTokenInvalid)
	}

	hashEncoded, ok := claims["hash"].(string)
	if !ok {
		return models.PendingRegistration{}, fmt.Errorf("%s: missing hash claim: %w", op, ErrTokenInvalid)
	}

	passHash, err := base64.StdEncoding.DecodeString(hashEncoded)
	if err != nil {
		return models.PendingRegistration{}, fmt.Errorf("%s: malformed hash claim: %w", op, ErrTokenInvalid)
	}

	return models.PendingRegistration{
		Name:     name,
		Email:    email,
		PassHash: passHash,
	}, nil
}

func (c *Codec) parse(tokenStr string) (jwt.MapClaims, error) {
	const op = "tokens.parse"

	claims := jwt.MapClaims{}

	parsedToken, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: unexpected signing method", op)
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}

	if !parsedToken.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}

	if purpose, ok := claims["purpose"].(string); !ok || purpose != c.purpose {
		return nil, fmt.Errorf("%s: invalid token purpose: %w", op, ErrTokenInvalid)
	}

	if _, ok := claims["exp"].(float64); !ok {
		return nil, fmt.Errorf("%s: missing exp claim: %w", op, ErrTokenInvalid)
	}

	return claims, nil
}
