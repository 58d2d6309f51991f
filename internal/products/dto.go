package products

import (
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the catalog listing payload returned to clients.
type ProductDTO struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Price            decimal.Decimal   `json:"price"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Tags             []string          `json:"tags"`
	Images           []ProductImageDTO `json:"images,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ProductImageDTO is one entry of the ordered image list.
type ProductImageDTO struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// Pagination carries cursor metadata for browse responses.
type Pagination struct {
	Total   int    `json:"total"`
	Current string `json:"current,omitempty"`
	First   string `json:"first,omitempty"`
	Last    string `json:"last,omitempty"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
}

// ProductPage is one page of browse results.
type ProductPage struct {
	Items      []ProductDTO `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Price:            product.Price,
		Description:      product.Description,
		ShortDescription: product.ShortDescription,
		Tags:             append([]string{}, product.Tags...),
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}

	if len(product.Images) > 0 {
		dto.Images = make([]ProductImageDTO, len(product.Images))
		for i, img := range product.Images {
			dto.Images[i] = ProductImageDTO{
				URL:      img.ImageURL,
				Position: img.Position,
			}
		}
	}

	return dto
}
