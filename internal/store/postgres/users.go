package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/calsync/calsync-server/internal/domain"
)

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// CreateUser inserts a new user.
// Returns store.ErrAlreadyExists if the email already exists.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	rec := userRecord{
		Name:       user.Name,
		Email:      user.Email,
		EmailLower: strings.ToLower(strings.TrimSpace(user.Email)),
		CreatedAt:  user.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}
	user.ID = rec.ID
	return nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, translate(err))
	}
	return rec.toDomain(), nil
}

// ListUsers returns all users ordered by ID.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var recs []userRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(recs))
	for i := range recs {
		users = append(users, recs[i].toDomain())
	}
	return users, nil
}
