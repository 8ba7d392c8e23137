package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type ItemFinder interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, bookingID, requesterID string) (*Booking, error)
	Confirm(ctx context.Context, bookingID, ownerID string, approved bool) (*Booking, error)
	ListForBooker(ctx context.Context, q ListQuery) ([]*Booking, error)
	ListForOwner(ctx context.Context, q ListQuery) ([]*Booking, error)
}

type service struct {
	repo   Repository
	users  UserFinder
	items  ItemFinder
	tx     db.Transactor
	logger *zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserFinder, items ItemFinder, tx db.Transactor, logger *zerolog.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		tx:     tx,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	var created *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		booker, err := s.users.GetByID(ctx, req.BookerID)
		if err != nil {
			return err
		}
		it, err := s.items.GetByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if it.OwnerID == booker.ID {
			return ErrAccessDenied
		}
		if !it.Available {
			return ErrItemUnavailable
		}

		b := &Booking{
			ItemID:     it.ID,
			ItemName:   it.Name,
			OwnerID:    it.OwnerID,
			BookerID:   booker.ID,
			BookerName: booker.Name,
			Start:      req.Start,
			End:        req.End,
			Status:     StatusWaiting,
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Str("booking_id", created.ID).
		Str("item_id", created.ItemID).
		Str("booker_id", created.BookerID).
		Msg("booking created")
	return created, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != requesterID && b.OwnerID != requesterID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

// Confirm records the owner's decision on a waiting booking.
// The read and the write share a transaction but take no row lock, so two
// concurrent decisions on the same booking can both succeed.
func (s *service) Confirm(ctx context.Context, bookingID, ownerID string, approved bool) (*Booking, error) {
	var decided *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.OwnerID != ownerID {
			return ErrAccessDenied
		}
		if b.Status != StatusWaiting {
			return ErrAlreadyDecided
		}

		status := StatusRejected
		if approved {
			status = StatusApproved
		}
		if err := s.repo.UpdateStatus(ctx, b.ID, status); err != nil {
			return err
		}
		b.Status = status
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(approved)
	s.logger.Info().
		Str("booking_id", decided.ID).
		Str("status", string(decided.Status)).
		Msg("booking decided")
	return decided, nil
}

func (s *service) ListForBooker(ctx context.Context, q ListQuery) ([]*Booking, error) {
	return s.list(ctx, q, func(f *Filter) { f.BookerID = q.UserID })
}

func (s *service) ListForOwner(ctx context.Context, q ListQuery) ([]*Booking, error) {
	return s.list(ctx, q, func(f *Filter) { f.OwnerID = q.UserID })
}

func (s *service) list(ctx context.Context, q ListQuery, scope func(*Filter)) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, q.UserID); err != nil {
		return nil, err
	}

	w, err := windowFor(q.State, s.now().Truncate(time.Second))
	if err != nil {
		return nil, err
	}

	filter := Filter{
		Window: w,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	scope(&filter)

	return s.repo.List(ctx, filter)
}
