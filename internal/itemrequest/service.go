package itemrequest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemLister looks up the items offered for a set of requests.
type ItemLister interface {
	ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, userID, description string) (*ItemRequest, error)
	Get(ctx context.Context, userID, requestID string) (*ItemRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*ItemRequest, error)
	ListAll(ctx context.Context, userID string, limit, offset int) ([]*ItemRequest, error)
}

type service struct {
	repo   Repository
	users  UserFinder
	items  ItemLister
	logger *zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserFinder, items ItemLister, logger *zerolog.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, userID, description string) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: userID,
		Created:     s.now().Truncate(time.Second),
		Items:       []*item.Item{},
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info().Str("request_id", req.ID).Str("requester_id", userID).Msg("item request created")
	return req, nil
}

func (s *service) Get(ctx context.Context, userID, requestID string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, []*ItemRequest{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.ListByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *service) ListAll(ctx context.Context, userID string, limit, offset int) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.ListExcluding(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// attachItems fills Items on every request with a single lookup.
func (s *service) attachItems(ctx context.Context, reqs []*ItemRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	byRequest, err := s.items.ListByRequests(ctx, ids)
	if err != nil {
		return err
	}
	for _, r := range reqs {
		r.Items = byRequest[r.ID]
		if r.Items == nil {
			r.Items = []*item.Item{}
		}
	}
	return nil
}
