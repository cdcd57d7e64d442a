package mongodb

import (
	"context"
	"time"

	"weblarek/domain/listing"
	"weblarek/domain/order"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderNumberCounter is the counter document id for order numbers.
const orderNumberCounter = "orderNumber"

// OrderRepository MongoDB implementation of the order port
type OrderRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
	tr       *translator
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		coll:     db.Collection(ordersCollection),
		counters: db.Collection(countersCollection),
		tr:       newTranslator("customer"),
	}
}

// NextOrderNumber atomically increments the order number sequence.
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": orderNumberCounter},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, apperrors.Storage(err, "failed to allocate order number")
	}
	return doc.Seq, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, o)
	if err != nil {
		return apperrors.Storage(err, "failed to create order")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number int64) (*order.Order, error) {
	return r.findOne(ctx, bson.M{"orderNumber": number})
}

func (r *OrderRepository) FindByNumberForCustomer(ctx context.Context, number int64, customerID string) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		// An unknown subject can never own an order.
		return nil, apperrors.OrderNotFound()
	}
	return r.findOne(ctx, bson.M{"orderNumber": number, "customer": oid})
}

func (r *OrderRepository) findOne(ctx context.Context, filter bson.M) (*order.Order, error) {
	var o order.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.OrderNotFound()
		}
		return nil, apperrors.Storage(err, "failed to find order")
	}
	return &o, nil
}

func (r *OrderRepository) Update(ctx context.Context, number int64, upd order.Update) (*order.Order, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o order.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"orderNumber": number}, bson.M{"$set": set}, opts).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.OrderNotFound()
		}
		return nil, apperrors.Storage(err, "failed to update order")
	}
	return &o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, number int64) (*order.Order, error) {
	var o order.Order
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"orderNumber": number}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.OrderNotFound()
		}
		return nil, apperrors.Storage(err, "failed to delete order")
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, spec *listing.Spec) ([]*order.Order, int64, error) {
	filter := r.tr.Filter(spec)

	cursor, err := r.coll.Find(ctx, filter, r.tr.FindOptions(spec))
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to list orders")
	}
	defer cursor.Close(ctx)

	orders := []*order.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, apperrors.Storage(err, "failed to decode orders")
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to count orders")
	}

	return orders, total, nil
}
