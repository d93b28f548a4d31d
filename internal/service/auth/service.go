package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/config"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for tokens that are missing, malformed,
// expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs in users and mints/verifies their bearer tokens.
type Service struct {
	users  mongodb.UserStore
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(users mongodb.UserStore, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		logger: logger,
	}
}

// SignIn checks the credentials and returns a signed bearer token plus the
// matched user.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user signed in", zap.String("email", user.Email), zap.String("role", user.Role))
	return signed, user, nil
}

// ParseToken verifies a bearer token and returns the identity it carries.
func (s *Service) ParseToken(tokenString string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: c.Subject, Email: c.Email, Role: c.Role}, nil
}

// HashPassword produces the bcrypt hash stored in the users collection.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
