package customer

import (
	"context"
	"time"

	"weblarek/domain/listing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAdmin grants access to the management endpoints.
const RoleAdmin = "admin"

// Customer is a registered account.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Roles     []string           `bson:"roles" json:"roles"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the customer carries the admin role.
func (c *Customer) IsAdmin() bool {
	for _, role := range c.Roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

// Update carries the admin-editable fields; nil means unchanged.
type Update struct {
	Name  *string
	Email *string
}

// Repository is the customer persistence port.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, id string, upd Update) (*Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *listing.Spec) ([]*Customer, int64, error)
}
