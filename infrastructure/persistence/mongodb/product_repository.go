package mongodb

import (
	"context"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/product"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository MongoDB implementation of the product port
type ProductRepository struct {
	coll *mongo.Collection
	tr   *translator
}

// NewProductRepository Create product repository
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		coll: db.Collection(productsCollection),
		tr:   newTranslator(),
	}
}

func productID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid product id")
	}
	return oid, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return apperrors.Storage(err, "failed to create product")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	oid, err := productID(id)
	if err != nil {
		return nil, err
	}

	var p product.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ProductNotFound()
		}
		return nil, apperrors.Storage(err, "failed to find product")
	}
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := productID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperrors.Storage(err, "failed to find products")
	}
	defer cursor.Close(ctx)

	products := []*product.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, apperrors.Storage(err, "failed to decode products")
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, upd product.Update) (*product.Product, error) {
	oid, err := productID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p product.Product
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ProductNotFound()
		}
		return nil, apperrors.Storage(err, "failed to update product")
	}
	return &p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := productID(id)
	if err != nil {
		return err
	}

	var p product.Product
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperrors.ProductNotFound()
		}
		return apperrors.Storage(err, "failed to delete product")
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, spec *listing.Spec) ([]*product.Product, int64, error) {
	filter := r.tr.Filter(spec)

	cursor, err := r.coll.Find(ctx, filter, r.tr.FindOptions(spec))
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	products := []*product.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, apperrors.Storage(err, "failed to decode products")
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to count products")
	}

	return products, total, nil
}
