package services

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/validators"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Login checks credentials and issues a session token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, in validators.LoginInput) (*LoginResult, error) {
	if err := validators.ValidateLogin(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.Unexpected(err, "Login failed")
	}
	if user == nil || !utils.CheckPassword(user.Password, in.Password) {
		return nil, apperror.Unauthenticated("Invalid email or password")
	}

	token, exp, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperror.Unexpected(err, "Login failed")
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Register creates a USER account.
func (s *AuthService) Register(ctx context.Context, in validators.RegisterInput) (*models.User, error) {
	if err := validators.ValidateRegistration(&in); err != nil {
		return nil, err
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, apperror.Unexpected(err, "Registration failed")
	} else if existing != nil {
		return nil, apperror.Conflict("Email is already registered")
	}
	if existing, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, apperror.Unexpected(err, "Registration failed")
	} else if existing != nil {
		return nil, apperror.Conflict("Username is already taken")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Unexpected(errors.Wrap(err, "hash password"), "Registration failed")
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Persistence(err, "Registration failed")
	}
	return user, nil
}
