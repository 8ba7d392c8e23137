package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state,default=ALL"`
}

type BookingResponse struct {
	ID     string           `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Item   itemHttp.ItemTag `json:"item"`
	Booker userHttp.UserTag `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
	}
}

type CreateBookingRequest struct {
	ItemID string            `json:"itemId" binding:"required,uuid"`
	Start  request.Timestamp `json:"start"`
	End    request.Timestamp `json:"end"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() || !r.End.After(r.Start.Time) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type ConfirmBookingRequest struct {
	Approved *bool `form:"approved" binding:"required"`
}
