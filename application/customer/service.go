// Package customer implements the admin-facing account management
// operations.
package customer

import (
	"context"
	"net/url"

	"weblarek/domain/customer"
	"weblarek/domain/listing"
)

// Service coordinates customer management use cases.
type Service struct {
	customers customer.Repository
}

// NewService creates the customer application service.
func NewService(customers customer.Repository) *Service {
	return &Service{customers: customers}
}

// UpdateRequest carries the admin-editable profile fields.
type UpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=30"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// listOptions is the customer resource's allow-list: searchable by name
// and email, sortable by profile fields only.
func listOptions() listing.Options {
	return listing.Options{
		SortFields:   []string{"name", "email", "createdAt"},
		SearchFields: []string{"name", "email"},
	}
}

// List returns one page of customers matching the raw query parameters.
func (s *Service) List(ctx context.Context, params url.Values, viewer listing.Viewer) ([]*customer.Customer, listing.Pagination, error) {
	spec, err := listing.Build(params, viewer, listOptions())
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	items, total, err := s.customers.List(ctx, spec)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(spec, total), nil
}

// Get returns a single customer by id.
func (s *Service) Get(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// Update patches a customer's profile fields.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*customer.Customer, error) {
	return s.customers.Update(ctx, id, customer.Update{Name: req.Name, Email: req.Email})
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}
