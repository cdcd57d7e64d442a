package product

import (
	"context"
	"time"

	"weblarek/domain/listing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is the stored public path of a catalog image produced by the
// upload pipeline.
type Image struct {
	FileName string `bson:"fileName" json:"fileName"`
}

// Product is a catalog entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Image       Image              `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Update carries the editable fields; nil means unchanged.
type Update struct {
	Title       *string
	Image       *Image
	Category    *string
	Description *string
	Price       *float64
}

// Repository is the product persistence port.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)
	Update(ctx context.Context, id string, upd Update) (*Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *listing.Spec) ([]*Product, int64, error)
}
