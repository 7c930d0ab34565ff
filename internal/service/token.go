package service

import (
	"time"

	"pickem/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Token failure causes. They stay distinguishable for logs and tests; the HTTP
// layer answers every one of them with the same 401.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenMalformed = errors.New("invalid token: malformed")
	ErrTokenAlgorithm = errors.New("invalid token: unexpected signing method")
	ErrTokenSignature = errors.New("invalid token: bad signature")
	ErrTokenExpired   = errors.New("invalid token: expired")
	ErrTokenClaims    = errors.New("invalid token: claims")
)

// Identity is who a token speaks for.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Claims defines JWT claims. sub always equals User.Username.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	Issue(id Identity) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// JWTTokens issues and verifies HS256 tokens with the process-wide secret.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ TokenIssuer   = (*JWTTokens)(nil)
	_ TokenVerifier = (*JWTTokens)(nil)
)

func NewJWTTokens(cfg *config.Config) *JWTTokens {
	return &JWTTokens{
		secret: []byte(cfg.Auth.Secret),
		ttl:    cfg.Auth.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for id that expires after the configured lifetime.
func (t *JWTTokens) Issue(id Identity) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		User: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify parses token and returns its claims, or one of the ErrToken* causes.
func (t *JWTTokens) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		// HS256 only; other HMAC sizes are refused as well
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenAlgorithm
		}
		return t.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.User.Username == "" || claims.Subject != claims.User.Username {
		return nil, ErrTokenClaims
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, ErrTokenAlgorithm), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenAlgorithm
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrInvalidToken
	}
}
