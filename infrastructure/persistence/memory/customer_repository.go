package memory

import (
	"context"
	"sync"
	"time"

	"weblarek/domain/customer"
	"weblarek/domain/listing"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerRepository In-memory implementation of the customer port
type CustomerRepository struct {
	mu        sync.RWMutex
	customers []*customer.Customer
}

// NewCustomerRepository Create in-memory customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return apperrors.EmailExists()
		}
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now

	clone := *c
	r.customers = append(r.customers, &clone)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid customer id")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.ID.Hex() == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperrors.CustomerNotFound()
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperrors.CustomerNotFound()
}

func (r *CustomerRepository) Update(ctx context.Context, id string, upd customer.Update) (*customer.Customer, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid customer id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.ID.Hex() != id {
			continue
		}
		if upd.Email != nil {
			for _, other := range r.customers {
				if other.ID != c.ID && other.Email == *upd.Email {
					return nil, apperrors.EmailExists()
				}
			}
			c.Email = *upd.Email
		}
		if upd.Name != nil {
			c.Name = *upd.Name
		}
		c.UpdatedAt = time.Now().UTC()
		clone := *c
		return &clone, nil
	}
	return nil, apperrors.CustomerNotFound()
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return apperrors.Validation("invalid customer id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.customers {
		if c.ID.Hex() == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			return nil
		}
	}
	return apperrors.CustomerNotFound()
}

func (r *CustomerRepository) List(ctx context.Context, spec *listing.Spec) ([]*customer.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]fields, len(r.customers))
	for i, c := range r.customers {
		docs[i] = fields{
			"name":      c.Name,
			"email":     c.Email,
			"createdAt": c.CreatedAt,
		}
	}

	selected, total := applySpec(spec, docs)
	result := make([]*customer.Customer, 0, len(selected))
	for _, i := range selected {
		clone := *r.customers[i]
		result = append(result, &clone)
	}
	return result, total, nil
}
