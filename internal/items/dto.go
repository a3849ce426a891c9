package items

// CreateItemRequest carries the payload for creating an item.
type CreateItemRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// UpdateItemRequest carries a partial update; nil fields are left unchanged.
type UpdateItemRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// ItemResponse is the public shape of an item.
type ItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
}

// ItemsResponse is a paginated collection of items.
type ItemsResponse struct {
	Data  []ItemResponse `json:"data"`
	Count int            `json:"count"`
}

// NewItemResponse maps a domain item to its response shape.
func NewItemResponse(it *Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID.String(),
	}
}
