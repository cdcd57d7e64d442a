package memory

import (
	"context"
	"sync"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/product"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository In-memory implementation of the product port
type ProductRepository struct {
	mu       sync.RWMutex
	products []*product.Product
}

// NewProductRepository Create in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	clone := *p
	r.products = append(r.products, &clone)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid product id")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID.Hex() == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, apperrors.ProductNotFound()
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*product.Product{}
	for _, id := range ids {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, apperrors.Validation("invalid product id")
		}
		for _, p := range r.products {
			if p.ID.Hex() == id {
				clone := *p
				result = append(result, &clone)
			}
		}
	}
	return result, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, upd product.Update) (*product.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid product id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID.Hex() != id {
			continue
		}
		if upd.Title != nil {
			p.Title = *upd.Title
		}
		if upd.Image != nil {
			p.Image = *upd.Image
		}
		if upd.Category != nil {
			p.Category = *upd.Category
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Price != nil {
			p.Price = *upd.Price
		}
		p.UpdatedAt = time.Now().UTC()
		clone := *p
		return &clone, nil
	}
	return nil, apperrors.ProductNotFound()
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperrors.Validation("invalid product id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID.Hex() == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return apperrors.ProductNotFound()
}

func (r *ProductRepository) List(ctx context.Context, spec *listing.Spec) ([]*product.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]fields, len(r.products))
	for i, p := range r.products {
		docs[i] = fields{
			"title":       p.Title,
			"category":    p.Category,
			"description": p.Description,
			"price":       p.Price,
			"createdAt":   p.CreatedAt,
		}
	}

	selected, total := applySpec(spec, docs)
	result := make([]*product.Product, 0, len(selected))
	for _, i := range selected {
		clone := *r.products[i]
		result = append(result, &clone)
	}
	return result, total, nil
}
