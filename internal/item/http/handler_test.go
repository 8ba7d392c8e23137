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
	"github.com/nekogravitycat/shareit-backend/internal/item"
)

const (
	ownerID    = "11111111-1111-1111-1111-111111111111"
	strangerID = "22222222-2222-2222-2222-222222222222"
	itemID     = "33333333-3333-3333-3333-333333333333"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req item.CreateRequest) (*item.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) Update(ctx context.Context, itemID, callerID string, req item.UpdateRequest) (*item.Item, error) {
	args := m.Called(ctx, itemID, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) Get(ctx context.Context, itemID, requesterID string) (*item.View, error) {
	args := m.Called(ctx, itemID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.View), args.Error(1)
}
func (m *mockService) GetByID(ctx context.Context, itemID string) (*item.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}
func (m *mockService) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*item.View, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.View), args.Error(1)
}
func (m *mockService) Search(ctx context.Context, text string, limit, offset int) ([]*item.Item, error) {
	args := m.Called(ctx, text, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}
func (m *mockService) ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*item.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*item.Item), args.Error(1)
}
func (m *mockService) Delete(ctx context.Context, itemID, callerID string) error {
	return m.Called(ctx, itemID, callerID).Error(0)
}
func (m *mockService) AddComment(ctx context.Context, req item.CommentRequest) (*item.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Comment), args.Error(1)
}

func setupRouter(svc item.Service) *gin.Engine {
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

func sampleItem() *item.Item {
	return &item.Item{ID: itemID, OwnerID: ownerID, Name: "Drill", Description: "Cordless", Available: true}
}

func TestCreateItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(req item.CreateRequest) bool {
			return req.OwnerID == ownerID && req.Name == "Drill" && req.Available != nil && *req.Available
		})).Return(sampleItem(), nil)

		w := executeRequest(r, http.MethodPost, "/items", `{"name":"Drill","description":"Cordless","available":true}`, ownerID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":"`+itemID+`","name":"Drill","description":"Cordless","available":true}`, w.Body.String())
	})

	t.Run("Missing available", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)

		w := executeRequest(r, http.MethodPost, "/items", `{"name":"Drill"}`, ownerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Without sharer", func(t *testing.T) {
		w := executeRequest(setupRouter(new(mockService)), http.MethodPost, "/items", `{"name":"Drill","available":true}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("Stranger", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Delete", mock.Anything, itemID, strangerID).Return(item.ErrAccessDenied)

		w := executeRequest(r, http.MethodDelete, "/items/"+itemID, "", strangerID)
		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Owner", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Delete", mock.Anything, itemID, ownerID).Return(nil)

		w := executeRequest(r, http.MethodDelete, "/items/"+itemID, "", ownerID)
		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Bad id", func(t *testing.T) {
		w := executeRequest(setupRouter(new(mockService)), http.MethodDelete, "/items/not-a-uuid", "", ownerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSearchIsPublic(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)
	svc.On("Search", mock.Anything, "drill", 10, 0).Return([]*item.Item{sampleItem()}, nil)

	w := executeRequest(r, http.MethodGet, "/items/search?text=drill", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp []ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, itemID, resp[0].ID)
}

func TestGetItem(t *testing.T) {
	created := time.Date(2024, 5, 20, 21, 12, 0, 0, time.UTC)
	comments := []*item.Comment{{ID: "c1", AuthorName: "Bob", Text: "Nice", Created: created}}

	t.Run("Non-owner sees no bookings", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Get", mock.Anything, itemID, strangerID).Return(&item.View{Item: sampleItem(), Comments: comments}, nil)

		w := executeRequest(r, http.MethodGet, "/items/"+itemID, "", strangerID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp, "lastBooking")
		assert.Nil(t, resp["lastBooking"])
		assert.Contains(t, resp, "nextBooking")
		assert.Nil(t, resp["nextBooking"])
		require.Len(t, resp["comments"], 1)
		assert.Equal(t, "Bob", resp["comments"].([]any)[0].(map[string]any)["authorName"])
	})

	t.Run("Owner sees bookings", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Get", mock.Anything, itemID, ownerID).Return(&item.View{
			Item:        sampleItem(),
			LastBooking: &item.BookingShort{ID: "b1", BookerID: strangerID},
			NextBooking: &item.BookingShort{ID: "b2", BookerID: strangerID},
		}, nil)

		w := executeRequest(r, http.MethodGet, "/items/"+itemID, "", ownerID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ItemDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.LastBooking)
		assert.Equal(t, "b1", resp.LastBooking.ID)
		require.NotNil(t, resp.NextBooking)
		assert.Equal(t, strangerID, resp.NextBooking.BookerID)
		assert.Empty(t, resp.Comments)
	})

	t.Run("Missing", func(t *testing.T) {
		svc := new(mockService)
		r := setupRouter(svc)
		svc.On("Get", mock.Anything, itemID, ownerID).Return(nil, item.ErrNotFound)

		w := executeRequest(r, http.MethodGet, "/items/"+itemID, "", ownerID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAddComment(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)
	svc.On("AddComment", mock.Anything, item.CommentRequest{AuthorID: strangerID, ItemID: itemID, Text: "Nice"}).
		Return(nil, item.ErrCommentNotAllowed)

	w := executeRequest(r, http.MethodPost, "/items/"+itemID+"/comment", `{"text":"Nice"}`, strangerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "completed booking")
}
