package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/kernel"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeTokenInvalid = ErrRegistry.Register("TOKEN_INVALID", errx.TypeAuthentication, http.StatusUnauthorized, "Token is invalid or expired")
	CodeTokenMissing = ErrRegistry.Register("TOKEN_MISSING", errx.TypeAuthentication, http.StatusUnauthorized, "Authorization token is missing")
	CodeScopeMissing = ErrRegistry.Register("SCOPE_MISSING", errx.TypeAuthorization, http.StatusForbidden, "Required scope not granted")
)

func ErrTokenInvalid() *errx.Error { return ErrRegistry.New(CodeTokenInvalid) }
func ErrTokenMissing() *errx.Error { return ErrRegistry.New(CodeTokenMissing) }
func ErrScopeMissing() *errx.Error { return ErrRegistry.New(CodeScopeMissing) }

// TokenClaims is the resolved identity carried by an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Role      string
	Email     string
	Scopes    []string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role string, email string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// JWTService implements TokenService with HMAC-signed JWTs
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTService creates a JWT token service
func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

type jwtClaims struct {
	Role   string   `json:"role"`
	Email  string   `json:"email"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role string, email string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Role:   role,
		Email:  email,
		Scopes: ScopesForRole(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid().WithCause(err)
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Role:      claims.Role,
		Email:     claims.Email,
		Scopes:    claims.Scopes,
		ExpiresAt: expires,
	}, nil
}
