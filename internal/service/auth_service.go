package service

import (
	"context"
	"fmt"
	"time"

	"poppes-store/internal/model"
	"poppes-store/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long a session token stays valid.
const tokenTTL = 24 * time.Hour

// authService implements AuthService with bcrypt password hashes and
// HS256 session tokens.
type authService struct {
	users  repository.UserRepository
	secret []byte
	logger zerolog.Logger
}

// NewAuthService creates a new auth service signing tokens with secret.
func NewAuthService(users repository.UserRepository, secret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		secret: []byte(secret),
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a customer account and returns a signed session token.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, fmt.Errorf("email, password and name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         model.RoleCustomer,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.sign(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed session token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug().Str("email", req.Email).Msg("password mismatch")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.sign(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return &model.AuthResponse{Token: token, User: user}, nil
}

// Verify parses and validates a session token.
func (s *authService) Verify(token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token missing user id")
	}

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   model.Role(role),
	}, nil
}

// GetUser retrieves the identity record behind a set of claims.
func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// sign issues an HS256 token carrying the user's id, email and role.
func (s *authService) sign(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
