package itemrequest

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a user's ask for an item nobody has listed yet.
// Items is filled on read with the items offered in answer; it is never stored.
type ItemRequest struct {
	ID          string
	Description string
	RequesterID string
	Created     time.Time
	Items       []*item.Item
}
