package order

import (
	"context"
	"regexp"
	"time"

	"weblarek/domain/listing"
	"weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusNew        Status = "new"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status value.
func Statuses() []string {
	return []string{
		string(StatusNew),
		string(StatusDelivering),
		string(StatusCompleted),
		string(StatusCancelled),
	}
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusNew, StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Item is a product snapshot embedded in an order. The title and price
// are captured at placement time so later catalog edits do not rewrite
// order history.
type Item struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
}

// Order is a placed order.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     int64              `bson:"orderNumber" json:"orderNumber"`
	Status          Status             `bson:"status" json:"status"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	Products        []Item             `bson:"products" json:"products"`
	Payment         string             `bson:"payment" json:"payment"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone"`
	Comment         string             `bson:"comment" json:"comment"`
	CustomerID      primitive.ObjectID `bson:"customer" json:"customer"`
	DeliveryAddress string             `bson:"deliveryAddress" json:"deliveryAddress"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var (
	phoneStrip = regexp.MustCompile(`[^\d+]`)
	phoneShape = regexp.MustCompile(`^\+?\d+$`)
)

// NormalizePhone strips formatting characters and validates the result.
func NormalizePhone(raw string) (string, error) {
	phone := phoneStrip.ReplaceAllString(raw, "")
	if len(phone) < 10 || len(phone) > 15 || !phoneShape.MatchString(phone) {
		return "", errors.Validation("invalid phone number")
	}
	return phone, nil
}

// Update carries the editable fields; nil means unchanged.
type Update struct {
	Status *Status
	Phone  *string
}

// Repository is the order persistence port. Orders are addressed by
// their public order number, not by document id.
type Repository interface {
	NextOrderNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, o *Order) error
	FindByNumber(ctx context.Context, number int64) (*Order, error)
	FindByNumberForCustomer(ctx context.Context, number int64, customerID string) (*Order, error)
	Update(ctx context.Context, number int64, upd Update) (*Order, error)
	Delete(ctx context.Context, number int64) (*Order, error)
	List(ctx context.Context, spec *listing.Spec) ([]*Order, int64, error)
}
