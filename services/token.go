package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors. Externally they all map to an unauthorized response, the
// distinction only matters for logging.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")
	ErrInvalidSubject = errors.New("invalid token subject")
)

// Principal is the authenticated identity attached to a request after token
// verification. It lives for exactly one request and is never persisted.
type Principal struct {
	UserID uuid.UUID
	Role   models.UserRole
	Email  string
}

func (p *Principal) IsAdmin() bool {
	return p.Role == models.AdminRole
}

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// secret is loaded once at process start and treated as read-only.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue creates a signed token carrying the subject id, role, issued-at and
// expiry computed as issued-at plus the configured TTL.
func (s *TokenService) Issue(userID uuid.UUID, role models.UserRole, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"role":  string(role),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity first, then expiry, then the structural
// validity of the claims. It is deterministic and side-effect free.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	if !token.Valid {
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidSubject
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidSubject
	}

	roleClaim, ok := claims["role"].(string)
	if !ok || !models.UserRole(roleClaim).Valid() {
		return nil, ErrInvalidSubject
	}

	email, _ := claims["email"].(string)

	return &Principal{
		UserID: userID,
		Role:   models.UserRole(roleClaim),
		Email:  email,
	}, nil
}
