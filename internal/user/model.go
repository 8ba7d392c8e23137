package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
)

// User represents a registered member who can own items and book others'.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
