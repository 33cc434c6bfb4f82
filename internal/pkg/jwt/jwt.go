package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Role is the caller's authorization tag carried in the token. Identity is
// issued by an external collaborator; this service only verifies and reads.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
)

type Service interface {
	// GenerateAccessToken mints a short-lived token for an employee. Used by
	// tooling and tests; production tokens come from the identity service
	// sharing the same secret.
	GenerateAccessToken(employeeID string, role Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessExpiration string
	tokenAuth        *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpiration string) Service {
	return &JWTService{
		accessExpiration: accessExpiration,
		tokenAuth:        jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, role Role) (string, int64, error) {
	expiration, err := time.ParseDuration(j.accessExpiration)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token expiration: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(expiration).Unix()

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"iat":         now.Unix(),
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode access token: %w", err)
	}

	return tokenString, expiresAt, nil
}
