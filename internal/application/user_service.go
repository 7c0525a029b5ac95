package application

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/apperror"
	"github.com/oksasatya/todo-api/pkg/helpers"
	"github.com/oksasatya/todo-api/pkg/token"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

var validate = validator.New()

// UserService owns signup, credential checks and the token lifecycle.
// Tokens live on the user row; issuing appends, logout removes.
type UserService struct {
	Repo   repository.UserRepository
	Codec  *token.Codec
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, codec *token.Codec, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Codec: codec, Logger: logger}
}

// Register creates a user and issues their first auth token.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, "", apperror.NewValidationError("email must be a valid email", err)
	}
	if len(password) < MinPasswordLength {
		return nil, "", apperror.NewValidationError("password is too short", nil)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", apperror.NewDatabaseError("failed to hash password", err)
	}

	u := &entity.User{Email: email, PasswordHash: hash, Tokens: []entity.AuthToken{}}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", apperror.NewValidationError("email already registered", err)
		}
		return nil, "", apperror.NewDatabaseError("failed to create user", err)
	}

	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login checks credentials and appends a fresh token to the user's list,
// leaving tokens from other sessions untouched.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, "", apperror.NewDatabaseError("failed to look up user", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", apperror.NewAuthError("invalid credentials", nil)
	}

	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Logout removes exactly the presented token from the user's list. Other
// sessions keep their tokens.
func (s *UserService) Logout(ctx context.Context, userID, tok string) error {
	if err := s.Repo.RemoveToken(ctx, userID, tok); err != nil {
		return apperror.NewDatabaseError("failed to remove token", err)
	}
	return nil
}

// GetByToken resolves a token to its user. The token must verify, carry
// the auth purpose, and still be present in a user's token list.
func (s *UserService) GetByToken(ctx context.Context, tok string) (*entity.User, error) {
	claims, err := s.Codec.Verify(tok)
	if err != nil {
		return nil, apperror.NewAuthError("invalid token", err)
	}
	if claims.Purpose != entity.TokenPurposeAuth {
		return nil, apperror.NewAuthError("invalid token purpose", nil)
	}
	u, err := s.Repo.GetByToken(ctx, entity.TokenPurposeAuth, tok)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewAuthError("token revoked or unknown", nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up token", err)
	}
	return u, nil
}

func (s *UserService) issueToken(ctx context.Context, u *entity.User) (string, error) {
	tok, err := s.Codec.Issue(u.ID, entity.TokenPurposeAuth)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return "", apperror.NewDatabaseError("failed to issue token", err)
	}
	entry := entity.AuthToken{Purpose: entity.TokenPurposeAuth, Token: tok}
	if err := s.Repo.AddToken(ctx, u.ID, entry); err != nil {
		return "", apperror.NewDatabaseError("failed to store token", err)
	}
	u.Tokens = append(u.Tokens, entry)
	return tok, nil
}
