package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

const (
	ownerID  = "11111111-1111-1111-1111-111111111111"
	bookerID = "22222222-2222-2222-2222-222222222222"
	itemID   = "33333333-3333-3333-3333-333333333333"
	bookID   = "44444444-4444-4444-4444-444444444444"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) GetByID(ctx context.Context, bookingID, requesterID string) (*booking.Booking, error) {
	args := m.Called(ctx, bookingID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) Confirm(ctx context.Context, bookingID, ownerID string, approved bool) (*booking.Booking, error) {
	args := m.Called(ctx, bookingID, ownerID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}
func (m *mockService) ListForBooker(ctx context.Context, q booking.ListQuery) ([]*booking.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}
func (m *mockService) ListForOwner(ctx context.Context, q booking.ListQuery) ([]*booking.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func setupRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(&r.RouterGroup, NewHandler(svc), auth.SharerRequired())
	return r
}

func executeRequest(r *gin.Engine, method, path, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set(auth.SharerHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking(status booking.Status) *booking.Booking {
	start := time.Date(2024, 5, 20, 21, 12, 0, 0, time.UTC)
	return &booking.Booking{
		ID: bookID, ItemID: itemID, ItemName: "Drill", OwnerID: ownerID,
		BookerID: bookerID, BookerName: "Bob",
		Start: start, End: start.Add(24 * time.Hour), Status: status,
	}
}

func TestCreateBooking(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req booking.CreateRequest) bool {
		return req.BookerID == bookerID && req.ItemID == itemID &&
			req.Start.Equal(time.Date(2024, 5, 20, 21, 12, 0, 0, time.UTC))
	})).Return(sampleBooking(booking.StatusWaiting), nil)

	body := `{"itemId":"` + itemID + `","start":"2024-05-20T21:12:00","end":"2024-05-21T21:12:00"}`
	w := executeRequest(r, http.MethodPost, "/bookings", body, bookerID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, itemID, resp.Item.ID)
	assert.Equal(t, "Drill", resp.Item.Name)
	assert.Equal(t, bookerID, resp.Booker.ID)
}

func TestCreateBookingBadRange(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	body := `{"itemId":"` + itemID + `","start":"2024-05-21T21:12:00","end":"2024-05-20T21:12:00"}`
	w := executeRequest(r, http.MethodPost, "/bookings", body, bookerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingWithoutSharer(t *testing.T) {
	r := setupRouter(new(mockService))
	w := executeRequest(r, http.MethodPost, "/bookings", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingForbidden(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)
	svc.On("GetByID", mock.Anything, bookID, ownerID).Return(nil, booking.ErrAccessDenied)

	w := executeRequest(r, http.MethodGet, "/bookings/"+bookID, "", ownerID)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestConfirmBooking(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)
	svc.On("Confirm", mock.Anything, bookID, ownerID, true).Return(sampleBooking(booking.StatusApproved), nil)

	w := executeRequest(r, http.MethodPatch, "/bookings/"+bookID+"?approved=true", "", ownerID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)

	w = executeRequest(r, http.MethodPatch, "/bookings/"+bookID, "", ownerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmAlreadyDecided(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)
	svc.On("Confirm", mock.Anything, bookID, ownerID, false).Return(nil, booking.ErrAlreadyDecided)

	w := executeRequest(r, http.MethodPatch, "/bookings/"+bookID+"?approved=false", "", ownerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookings(t *testing.T) {
	t.Run("DefaultsToAll", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("ListForBooker", mock.Anything, booking.ListQuery{
			UserID: bookerID, State: booking.StateAll, Limit: 10, Offset: 0,
		}).Return([]*booking.Booking{sampleBooking(booking.StatusWaiting)}, nil)

		w := executeRequest(r, http.MethodGet, "/bookings", "", bookerID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("OwnerPaged", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("ListForOwner", mock.Anything, booking.ListQuery{
			UserID: ownerID, State: booking.StateFuture, Limit: 2, Offset: 4,
		}).Return([]*booking.Booking{}, nil)

		w := executeRequest(r, http.MethodGet, "/bookings/owner?state=future&from=5&size=2", "", ownerID)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("UnknownState", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := executeRequest(r, http.MethodGet, "/bookings?state=NON", "", bookerID)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Unknown state: NON"}`, w.Body.String())
	})

	t.Run("Canceled", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("ListForOwner", mock.Anything, mock.Anything).Return(nil, booking.ErrUnsupportedState)

		w := executeRequest(r, http.MethodGet, "/bookings/owner?state=CANCELED", "", ownerID)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Unknown state: CANCELED"}`, w.Body.String())
	})

	t.Run("NegativeFrom", func(t *testing.T) {
		r := setupRouter(new(mockService))
		w := executeRequest(r, http.MethodGet, "/bookings?from=-1", "", bookerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
