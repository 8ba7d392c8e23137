package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *string `json:"requestId,omitempty"`
}

// BookingShortResponse is the owner-only summary of an adjacent booking.
type BookingShortResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"bookerId"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDetailResponse is an item together with its comments and, for the owner, booking summaries.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		Text:       cm.Text,
		AuthorName: cm.AuthorName,
		Created:    cm.Created,
	}
}

func newBookingShort(b *item.BookingShort) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{ID: b.ID, BookerID: b.BookerID}
}

func NewItemDetailResponse(v *item.View) ItemDetailResponse {
	comments := make([]CommentResponse, len(v.Comments))
	for i, cm := range v.Comments {
		comments[i] = NewCommentResponse(cm)
	}
	return ItemDetailResponse{
		ItemResponse: NewItemResponse(v.Item),
		LastBooking:  newBookingShort(v.LastBooking),
		NextBooking:  newBookingShort(v.NextBooking),
		Comments:     comments,
	}
}

// CreateItemRequest is the body of POST /items.
// Available is a pointer so that a missing field is rejected instead of read as false.
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type SearchItemsRequest struct {
	request.PageParams
	Text string `form:"text"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
