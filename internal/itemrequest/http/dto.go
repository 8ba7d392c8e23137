package http

import (
	"time"

	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type ItemRequestResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	RequesterID string                  `json:"requesterId"`
	Created     time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewItemRequestResponse(r *itemrequest.ItemRequest) ItemRequestResponse {
	items := make([]itemHttp.ItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = itemHttp.NewItemResponse(it)
	}
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     r.Created,
		Items:       items,
	}
}

func newItemRequestResponses(reqs []*itemrequest.ItemRequest) []ItemRequestResponse {
	out := make([]ItemRequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = NewItemRequestResponse(r)
	}
	return out
}
