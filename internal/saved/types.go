package saved

import (
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/internal/products"
)

// SavedItemDTO wraps the product summary included in a saved-items row.
type SavedItemDTO struct {
	Product products.ProductDTO `json:"product"`
	SavedAt time.Time           `json:"saved_at"`
}

// SavedItemsPageDTO returns a cursor-paginated saved-items view.
type SavedItemsPageDTO struct {
	Items      []SavedItemDTO      `json:"items"`
	Pagination products.Pagination `json:"pagination"`
}

// SavedIDsDTO is a lightweight projection containing only product IDs, used
// to mark hearts across the catalog grid.
type SavedIDsDTO struct {
	ProductIDs []int64 `json:"product_ids"`
}
