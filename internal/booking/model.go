package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrAccessDenied     = apperror.New(http.StatusForbidden, "you do not have the necessary access rights")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "the item is not available for booking")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "the booking has already been approved or rejected")
	ErrUnsupportedState = apperror.New(http.StatusInternalServerError, "the request was not found")
)

// Status is the persisted lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Booking is a renter's reservation of an item for [Start, End].
// ItemName, OwnerID and BookerName are read-only and filled from joins.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
}

// ListQuery selects bookings of one user, either as booker or as item owner.
type ListQuery struct {
	UserID string
	State  State
	Limit  int
	Offset int
}
