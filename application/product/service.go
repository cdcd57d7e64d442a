// Package product implements catalog management and browsing.
package product

import (
	"context"
	"net/url"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/product"
)

// Service coordinates catalog use cases.
type Service struct {
	products product.Repository
}

// NewService creates the product application service.
func NewService(products product.Repository) *Service {
	return &Service{products: products}
}

// ImageRequest references an uploaded image by its public path.
type ImageRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// CreateRequest carries a new catalog entry. Price is a pointer so that
// priceless items (value zero) stay distinguishable from an absent field.
type CreateRequest struct {
	Title       string       `json:"title" binding:"required,min=2,max=30"`
	Image       ImageRequest `json:"image" binding:"required"`
	Category    string       `json:"category" binding:"required"`
	Description string       `json:"description"`
	Price       *float64     `json:"price"`
}

// UpdateRequest patches a catalog entry; nil fields stay unchanged.
type UpdateRequest struct {
	Title       *string       `json:"title" binding:"omitempty,min=2,max=30"`
	Image       *ImageRequest `json:"image"`
	Category    *string       `json:"category"`
	Description *string       `json:"description"`
	Price       *float64      `json:"price"`
}

func listOptions() listing.Options {
	return listing.Options{
		SortFields:   []string{"title", "price", "category", "createdAt"},
		SearchFields: []string{"title", "description"},
	}
}

// List returns one page of products matching the raw query parameters.
func (s *Service) List(ctx context.Context, params url.Values, viewer listing.Viewer) ([]*product.Product, listing.Pagination, error) {
	spec, err := listing.Build(params, viewer, listOptions())
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	items, total, err := s.products.List(ctx, spec)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(spec, total), nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*product.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create adds a catalog entry.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*product.Product, error) {
	now := time.Now().UTC()
	p := &product.Product{
		Title:       req.Title,
		Image:       product.Image{FileName: req.Image.FileName},
		Category:    req.Category,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update patches a catalog entry.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*product.Product, error) {
	upd := product.Update{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Image != nil {
		upd.Image = &product.Image{FileName: req.Image.FileName}
	}
	return s.products.Update(ctx, id, upd)
}

// Delete removes a catalog entry and returns what was removed.
func (s *Service) Delete(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}
