package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *string
}

type CommentRequest struct {
	AuthorID string
	ItemID   string
	Text     string
}

// UserFinder is the part of the user directory the catalog depends on.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// BookingReader exposes the booking facts the catalog shows and checks.
// LastBooking and NextBooking return nil when there is no such booking.
type BookingReader interface {
	LastBooking(ctx context.Context, itemID string, now time.Time) (*BookingShort, error)
	NextBooking(ctx context.Context, itemID string, now time.Time) (*BookingShort, error)
	HasPastBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, callerID string, req UpdateRequest) (*Item, error)
	Get(ctx context.Context, itemID, requesterID string) (*View, error)
	GetByID(ctx context.Context, itemID string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*View, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
	ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error)
	Delete(ctx context.Context, itemID, callerID string) error
	AddComment(ctx context.Context, req CommentRequest) (*Comment, error)
}

type service struct {
	repo     Repository
	users    UserFinder
	bookings BookingReader
	tx       db.Transactor
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, users UserFinder, bookings BookingReader, tx db.Transactor, logger *zerolog.Logger) Service {
	return &service{
		repo:     repo,
		users:    users,
		bookings: bookings,
		tx:       tx,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// clock returns the current time truncated to whole seconds.
func (s *service) clock() time.Time {
	return s.now().Truncate(time.Second)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if req.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	it := &Item{
		OwnerID:     req.OwnerID,
		Name:        name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", it.ID).Str("owner_id", it.OwnerID).Msg("item created")
	return it, nil
}

func (s *service) Update(ctx context.Context, itemID, callerID string, req UpdateRequest) (*Item, error) {
	var updated *Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, callerID); err != nil {
			return err
		}

		it, err := s.repo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if it.OwnerID != callerID {
			return ErrAccessDenied
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return ErrNameRequired
			}
			it.Name = name
		}
		if req.Description != nil {
			it.Description = *req.Description
		}
		if req.Available != nil {
			it.Available = *req.Available
		}
		if req.RequestID != nil {
			it.RequestID = req.RequestID
		}

		if err := s.repo.Update(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", itemID).Msg("item updated")
	return updated, nil
}

func (s *service) Get(ctx context.Context, itemID, requesterID string) (*View, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, it, requesterID)
}

func (s *service) view(ctx context.Context, it *Item, requesterID string) (*View, error) {
	v := &View{Item: it}

	if it.OwnerID == requesterID {
		now := s.clock()
		last, err := s.bookings.LastBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		v.LastBooking = last
		v.NextBooking = next
	}

	comments, err := s.repo.ListComments(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	v.Comments = comments

	return v, nil
}

func (s *service) GetByID(ctx context.Context, itemID string) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*View, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(items))
	for _, it := range items {
		v, err := s.view(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, limit, offset)
}

func (s *service) ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error) {
	result := make(map[string][]*Item, len(requestIDs))
	if len(requestIDs) == 0 {
		return result, nil
	}

	items, err := s.repo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		result[*it.RequestID] = append(result[*it.RequestID], it)
	}
	return result, nil
}

// Delete removes an item. Only its owner may delete it.
func (s *service) Delete(ctx context.Context, itemID, callerID string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.repo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if it.OwnerID != callerID {
			return ErrAccessDenied
		}
		return s.repo.Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("item_id", itemID).Str("owner_id", callerID).Msg("item deleted")
	return nil
}

func (s *service) AddComment(ctx context.Context, req CommentRequest) (*Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrTextRequired
	}

	author, err := s.users.GetByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, req.ItemID); err != nil {
		return nil, err
	}

	now := s.clock()
	rented, err := s.bookings.HasPastBooking(ctx, req.ItemID, req.AuthorID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, ErrCommentNotAllowed
	}

	cm := &Comment{
		ItemID:     req.ItemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", req.ItemID).Str("author_id", author.ID).Msg("comment added")
	return cm, nil
}
