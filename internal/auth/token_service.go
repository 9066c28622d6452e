package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session token validity window. Tokens are
// self-contained bearers with no revocation list, so the window is kept to
// hours rather than days.
const DefaultTokenTTL = 24 * time.Hour

// TokenConfig bundles the configuration required to build a TokenService.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Clock  func() time.Time
}

// Claims are the session claims embedded in issued tokens: the subject user
// id, their email, and their role id. The role id is what every subsequent
// authorization check keys on.
type Claims struct {
	Email  string `json:"email"`
	RoleID uint   `json:"role_id"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token: invalid subject claim %q", c.Subject)
	}
	return uint(id), nil
}

// TokenService issues and validates session tokens. Signing is symmetric
// (HMAC-SHA-512): the same process issues and verifies, so no key
// distribution is needed.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService constructs a TokenService from the provided configuration.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: secret must be provided")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}

	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue signs a session token for the given identity.
func (s *TokenService) Issue(userID uint, email string, roleID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("token: user id is required")
	}

	now := s.now()
	claims := &Claims{
		Email:  email,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a signed token, returning its claims. All
// failure modes (bad signature, malformed payload, expiry, wrong algorithm)
// surface as an error; callers must not distinguish them in responses.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token: token string is empty")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token: parse: %w", err)
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, errors.New("token: invalid issuer")
	}

	if claims.Subject == "" {
		return nil, errors.New("token: missing subject claim")
	}

	return &claims, nil
}
