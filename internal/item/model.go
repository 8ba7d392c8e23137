package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "item name is required")
	ErrAvailableRequired = apperror.New(http.StatusBadRequest, "item availability is required")
	ErrOwnerRequired     = apperror.New(http.StatusBadRequest, "item owner is required")
	ErrAccessDenied      = apperror.New(http.StatusForbidden, "you do not have the necessary access rights")
	ErrTextRequired      = apperror.New(http.StatusBadRequest, "comment text is required")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "you can't comment without a completed booking")
)

// Item is a thing an owner offers for lending.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string // set when the item answers an item request
	CreatedAt   time.Time
}

// Comment is feedback left by someone who has rented the item.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingShort is the booking summary shown to an item's owner.
type BookingShort struct {
	ID       string
	BookerID string
}

// View is an item as returned to a particular requester.
// LastBooking and NextBooking are only populated for the owner.
type View struct {
	Item        *Item
	LastBooking *BookingShort
	NextBooking *BookingShort
	Comments    []*Comment
}
