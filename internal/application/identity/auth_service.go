package identity

import (
	"context"

	"github.com/pawnbook/backend/internal/domain/identity"
	"github.com/pawnbook/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	Issue(userID, username, role string) (string, error)
}

// LoginRequest is the dashboard login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=200"`
}

// LoginResponse carries the issued token and the user's display info
type LoginResponse struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AuthService handles dashboard login
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, logger: logger}
}

// Login verifies credentials and issues a token. Wrong username and wrong
// password return the same error so logins cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalid := shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, invalid
	}
	if !user.Active || !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, invalid
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}, nil
}
