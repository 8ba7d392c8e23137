package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

// ItemBookings answers the item catalog's booking questions straight from the repository.
type ItemBookings struct {
	repo Repository
}

func NewItemBookings(repo Repository) *ItemBookings {
	return &ItemBookings{repo: repo}
}

var _ item.BookingReader = (*ItemBookings)(nil)

func (a *ItemBookings) LastBooking(ctx context.Context, itemID string, now time.Time) (*item.BookingShort, error) {
	b, err := a.repo.LastForItem(ctx, itemID, now)
	return toShort(b), err
}

func (a *ItemBookings) NextBooking(ctx context.Context, itemID string, now time.Time) (*item.BookingShort, error) {
	b, err := a.repo.NextForItem(ctx, itemID, now)
	return toShort(b), err
}

func (a *ItemBookings) HasPastBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	return a.repo.HasPastBooking(ctx, itemID, bookerID, now)
}

func toShort(b *Booking) *item.BookingShort {
	if b == nil {
		return nil
	}
	return &item.BookingShort{ID: b.ID, BookerID: b.BookerID}
}
