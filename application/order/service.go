// Package order implements order placement and management.
package order

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/order"
	"weblarek/domain/product"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service coordinates order use cases.
type Service struct {
	orders   order.Repository
	products product.Repository
}

// NewService creates the order application service.
func NewService(orders order.Repository, products product.Repository) *Service {
	return &Service{orders: orders, products: products}
}

// CreateRequest carries a new order. Items reference catalog products by
// id; titles and prices are snapshotted server-side at placement time.
type CreateRequest struct {
	Items   []string `json:"items" binding:"required,min=1"`
	Payment string   `json:"payment" binding:"required,oneof=card online"`
	Email   string   `json:"email" binding:"required,email"`
	Phone   string   `json:"phone" binding:"required"`
	Address string   `json:"address" binding:"required"`
	Comment string   `json:"comment"`
	Total   float64  `json:"total"`
}

// UpdateRequest patches an order; nil fields stay unchanged.
type UpdateRequest struct {
	Status *string `json:"status"`
	Phone  *string `json:"phone"`
}

// listOptions is the order resource's allow-list. Free-text search runs
// over embedded product titles and, for numeric input, the order number.
func listOptions() listing.Options {
	return listing.Options{
		SortFields:         []string{"createdAt", "totalAmount", "orderNumber", "status"},
		SearchFields:       []string{"products.title"},
		NumericSearchField: "orderNumber",
		OwnerField:         "customer",
		OwnerParam:         "customer",
		EnumFilters: []listing.EnumFilter{
			{Param: "status", Field: "status", Allowed: order.Statuses()},
		},
		RangeFilters: []listing.RangeFilter{
			{Field: "totalAmount", FromParam: "totalAmountFrom", ToParam: "totalAmountTo"},
			{Field: "createdAt", FromParam: "orderDateFrom", ToParam: "orderDateTo", Date: true},
		},
	}
}

// List returns one page of orders visible to the viewer. Non-admin
// viewers only ever see their own orders regardless of the parameters.
func (s *Service) List(ctx context.Context, params url.Values, viewer listing.Viewer) ([]*order.Order, listing.Pagination, error) {
	spec, err := listing.Build(params, viewer, listOptions())
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	items, total, err := s.orders.List(ctx, spec)
	if err != nil {
		return nil, listing.Pagination{}, err
	}
	return items, listing.NewPagination(spec, total), nil
}

// Create places an order for the given customer. The total amount is
// recomputed from the referenced products; a client-sent total is only
// accepted when it matches.
func (s *Service) Create(ctx context.Context, customerID string, req CreateRequest) (*order.Order, error) {
	phone, err := order.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	custID, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, apperrors.Unauthorized("authorization required")
	}

	products, err := s.products.FindByIDs(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	var items []order.Item
	var total float64
	for _, id := range req.Items {
		p, ok := byID[id]
		if !ok {
			return nil, apperrors.BadRequest("order references an unknown product")
		}
		items = append(items, order.Item{ProductID: p.ID, Title: p.Title, Price: p.Price})
		total += p.Price
	}
	if req.Total != 0 && req.Total != total {
		return nil, apperrors.Validation("order total does not match product prices")
	}

	number, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &order.Order{
		OrderNumber:     number,
		Status:          order.StatusNew,
		TotalAmount:     total,
		Products:        items,
		Payment:         req.Payment,
		Email:           req.Email,
		Phone:           phone,
		Comment:         listing.StripTags(req.Comment),
		CustomerID:      custID,
		DeliveryAddress: req.Address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByNumber returns any order by its public number.
func (s *Service) GetByNumber(ctx context.Context, rawNumber string) (*order.Order, error) {
	number, err := parseOrderNumber(rawNumber)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByNumber(ctx, number)
}

// GetOwnByNumber returns an order only when it belongs to the customer.
func (s *Service) GetOwnByNumber(ctx context.Context, rawNumber, customerID string) (*order.Order, error) {
	number, err := parseOrderNumber(rawNumber)
	if err != nil {
		return nil, err
	}
	return s.orders.FindByNumberForCustomer(ctx, number, customerID)
}

// Update patches an order's status and phone.
func (s *Service) Update(ctx context.Context, rawNumber string, req UpdateRequest) (*order.Order, error) {
	number, err := parseOrderNumber(rawNumber)
	if err != nil {
		return nil, err
	}

	upd := order.Update{}
	if req.Status != nil {
		if !order.ValidStatus(*req.Status) {
			return nil, apperrors.Validation("invalid order status")
		}
		status := order.Status(*req.Status)
		upd.Status = &status
	}
	if req.Phone != nil {
		phone, err := order.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		upd.Phone = &phone
	}
	return s.orders.Update(ctx, number, upd)
}

// Delete removes an order and returns what was removed.
func (s *Service) Delete(ctx context.Context, rawNumber string) (*order.Order, error) {
	number, err := parseOrderNumber(rawNumber)
	if err != nil {
		return nil, err
	}
	return s.orders.Delete(ctx, number)
}

// parseOrderNumber treats anything non-numeric as an order that does not
// exist rather than echoing the raw value back in an error.
func parseOrderNumber(raw string) (int64, error) {
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || number < 1 {
		return 0, apperrors.OrderNotFound()
	}
	return number, nil
}
