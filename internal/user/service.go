package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/db"
)

// CreateRequest carries the fields needed to register a user.
type CreateRequest struct {
	Name  string
	Email string
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name  *string
	Email *string
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	tx     db.Transactor
	logger *zerolog.Logger
}

// NewService creates a new user Service.
func NewService(repo Repository, tx db.Transactor, logger *zerolog.Logger) Service {
	return &service{
		repo:   repo,
		tx:     tx,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	u := &User{
		Name:  name,
		Email: email,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	var updated *User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrNameRequired
			}
			u.Name = name
		}
		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email == "" {
				return ErrEmailRequired
			}
			u.Email = email
		}

		if err := s.repo.Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
