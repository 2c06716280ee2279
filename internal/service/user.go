package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/calsync/calsync-server/internal/domain"
	domainerrors "github.com/calsync/calsync-server/internal/errors"
	"github.com/calsync/calsync-server/internal/store"
	"github.com/calsync/calsync-server/internal/validation"
)

// UserService manages the users that own calendars.
type UserService struct {
	store     store.UserStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.UserStore, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateUser registers a new user. Emails are unique, ignoring case.
func (s *UserService) CreateUser(ctx context.Context, req domain.NewUser) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user := &domain.User{Name: req.Name, Email: req.Email}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a user with this email already exists")
		}
		return nil, domainerrors.StoreFailure(err, "create user")
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.UserNotFound(userID)
		}
		return nil, domainerrors.StoreFailure(err, "get user")
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, domainerrors.StoreFailure(err, "list users")
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
