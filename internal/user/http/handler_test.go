package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/user"
)

const userID = "11111111-1111-1111-1111-111111111111"

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, req user.CreateRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
func (m *mockUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
func (m *mockUserService) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}
func (m *mockUserService) Update(ctx context.Context, id string, req user.UpdateRequest) (*user.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(&r.RouterGroup, NewHandler(svc))
	return r
}

func executeRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mockUserService)
		r := setupRouter(svc)
		svc.On("Create", mock.Anything, user.CreateRequest{Name: "Alice", Email: "alice@example.com"}).
			Return(&user.User{ID: userID, Name: "Alice", Email: "alice@example.com"}, nil)

		w := executeRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"id":"`+userID+`","name":"Alice","email":"alice@example.com"}`, w.Body.String())
	})

	t.Run("Invalid email", func(t *testing.T) {
		svc := new(mockUserService)
		r := setupRouter(svc)

		w := executeRequest(r, http.MethodPost, "/users", `{"name":"Alice","email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing name", func(t *testing.T) {
		svc := new(mockUserService)
		r := setupRouter(svc)

		w := executeRequest(r, http.MethodPost, "/users", `{"email":"alice@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Name only", func(t *testing.T) {
		svc := new(mockUserService)
		r := setupRouter(svc)
		svc.On("Update", mock.Anything, userID, mock.MatchedBy(func(req user.UpdateRequest) bool {
			return req.Name != nil && *req.Name == "Alicia" && req.Email == nil
		})).Return(&user.User{ID: userID, Name: "Alicia", Email: "alice@example.com"}, nil)

		w := executeRequest(r, http.MethodPatch, "/users/"+userID, `{"name":"Alicia"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"name":"Alicia"`)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid email", func(t *testing.T) {
		svc := new(mockUserService)
		r := setupRouter(svc)

		w := executeRequest(r, http.MethodPatch, "/users/"+userID, `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetUser(t *testing.T) {
	svc := new(mockUserService)
	r := setupRouter(svc)
	svc.On("GetByID", mock.Anything, userID).Return(nil, user.ErrNotFound)

	w := executeRequest(r, http.MethodGet, "/users/"+userID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
}

func TestListAndDeleteUsers(t *testing.T) {
	svc := new(mockUserService)
	r := setupRouter(svc)
	svc.On("List", mock.Anything).Return([]*user.User{}, nil)
	svc.On("Delete", mock.Anything, userID).Return(nil)

	w := executeRequest(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = executeRequest(r, http.MethodDelete, "/users/"+userID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
