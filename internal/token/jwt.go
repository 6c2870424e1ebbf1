package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/sweetshop-server/internal/model"
)

// MinSecretLength is the minimum HMAC key size in bytes (256 bits).
const MinSecretLength = 32

// DefaultTTL is the validity window of issued tokens.
const DefaultTTL = 10 * time.Hour

var ErrWeakSecret = errors.New("jwt secret must be at least 256 bits")

var _ model.TokenCodec = (*JWT)(nil)

// Claims represents JWT claims with the account role.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// JWT implements TokenCodec backed by HMAC-SHA256.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	parser    *jwt.Parser
	now       func() time.Time
}

// NewJWT creates a token codec. It refuses secrets shorter than MinSecretLength.
func NewJWT(secretKey string, ttl time.Duration) (*JWT, error) {
	if len(secretKey) < MinSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrWeakSecret, len(secretKey))
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &JWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		// Expiry is checked separately by IsExpired.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}, nil
}

// Issue signs a token for subject valid for the configured TTL.
func (j *JWT) Issue(subject string, role model.Role) (string, error) {
	now := j.now().Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies the signature and returns the embedded claims.
func (j *JWT) Decode(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	_, err := j.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return model.Claims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return model.Claims{}, fmt.Errorf("%w: missing sub or exp", model.ErrInvalidToken)
	}

	out := model.Claims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

// IsExpired treats a token as expired once now reaches expiresAt, at second resolution.
func (j *JWT) IsExpired(claims model.Claims) bool {
	return !j.now().Truncate(time.Second).Before(claims.ExpiresAt.Truncate(time.Second))
}
