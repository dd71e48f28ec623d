package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
)

// TokenIssuer is written to and required in the iss claim.
const TokenIssuer = "project-tracker"

type TokenCodec interface {
	Issue(p models.Principal) (string, error)
	Verify(token string) (models.Principal, error)
}

type claims struct {
	Username string          `json:"username"`
	Email    string          `json:"email,omitempty"`
	Role     models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs HS256 tokens with a shared secret.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *JWTCodec) Issue(p models.Principal) (string, error) {
	now := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatUint(uint64(p.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(token string) (models.Principal, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, apperror.TokenExpired(err)
		}
		return models.Principal{}, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeInvalidCredentials,
			Message: "Invalid token",
			Err:     err,
		}
	}

	id, err := strconv.ParseUint(cl.Subject, 10, 64)
	if err != nil || id == 0 {
		return models.Principal{}, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeInvalidCredentials,
			Message: "Invalid token subject",
			Err:     err,
		}
	}
	if !cl.Role.Valid() {
		return models.Principal{}, &apperror.Error{
			Kind:    apperror.KindInvalidCredentials,
			Code:    apperror.CodeInvalidCredentials,
			Message: "Invalid token role",
		}
	}

	return models.Principal{
		ID:       uint(id),
		Username: cl.Username,
		Email:    cl.Email,
		Role:     cl.Role,
	}, nil
}
