package memory

import (
	"context"
	"sync"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/order"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository In-memory implementation of the order port
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*order.Order
	seq    int64
}

// NewOrderRepository Create in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now

	clone := *o
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number int64) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == number {
			clone := *o
			return &clone, nil
		}
	}
	return nil, apperrors.OrderNotFound()
}

func (r *OrderRepository) FindByNumberForCustomer(ctx context.Context, number int64, customerID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == number && o.CustomerID.Hex() == customerID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, apperrors.OrderNotFound()
}

func (r *OrderRepository) Update(ctx context.Context, number int64, upd order.Update) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderNumber != number {
			continue
		}
		if upd.Status != nil {
			o.Status = *upd.Status
		}
		if upd.Phone != nil {
			o.Phone = *upd.Phone
		}
		o.UpdatedAt = time.Now().UTC()
		clone := *o
		return &clone, nil
	}
	return nil, apperrors.OrderNotFound()
}

func (r *OrderRepository) Delete(ctx context.Context, number int64) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.OrderNumber == number {
			clone := *o
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return &clone, nil
		}
	}
	return nil, apperrors.OrderNotFound()
}

func (r *OrderRepository) List(ctx context.Context, spec *listing.Spec) ([]*order.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]fields, len(r.orders))
	for i, o := range r.orders {
		titles := make([]string, len(o.Products))
		for j, item := range o.Products {
			titles[j] = item.Title
		}
		docs[i] = fields{
			"status":         string(o.Status),
			"orderNumber":    o.OrderNumber,
			"totalAmount":    o.TotalAmount,
			"customer":       o.CustomerID.Hex(),
			"products.title": titles,
			"createdAt":      o.CreatedAt,
		}
	}

	selected, total := applySpec(spec, docs)
	result := make([]*order.Order, 0, len(selected))
	for _, i := range selected {
		clone := *r.orders[i]
		result = append(result, &clone)
	}
	return result, total, nil
}
