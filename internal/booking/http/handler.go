package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: auth.GetUserID(c),
		ItemID:   body.ItemID,
		Start:    body.Start.Time,
		End:      body.End.Time,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Confirm approves or rejects a waiting booking. Only the item owner may decide.
func (h *Handler) Confirm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	var query ConfirmBookingRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), uri.ID, auth.GetUserID(c), *query.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListMine lists bookings the caller made.
func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, h.service.ListForBooker)
}

// ListOwned lists bookings of the caller's items.
func (h *Handler) ListOwned(c *gin.Context) {
	h.list(c, h.service.ListForOwner)
}

func (h *Handler) list(c *gin.Context, fetch func(ctx context.Context, q booking.ListQuery) ([]*booking.Booking, error)) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	state, err := booking.ParseState(req.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := fetch(c.Request.Context(), booking.ListQuery{
		UserID: auth.GetUserID(c),
		State:  state,
		Limit:  req.Limit(),
		Offset: req.Offset(),
	})
	if err != nil {
		// Filters without a query are reported the same way as unknown names.
		if errors.Is(err, booking.ErrUnsupportedState) {
			response.Error(c, booking.UnknownState(req.State))
			return
		}
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, items)
}
