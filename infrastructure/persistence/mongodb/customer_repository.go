package mongodb

import (
	"context"
	"time"

	"weblarek/domain/customer"
	"weblarek/domain/listing"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CustomerRepository MongoDB implementation of the customer port
type CustomerRepository struct {
	coll *mongo.Collection
	tr   *translator
}

// NewCustomerRepository Create customer repository
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		coll: db.Collection(customersCollection),
		tr:   newTranslator(),
	}
}

func customerID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid customer id")
	}
	return oid, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.EmailExists()
		}
		return apperrors.Storage(err, "failed to create customer")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	oid, err := customerID(id)
	if err != nil {
		return nil, err
	}

	var c customer.Customer
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.CustomerNotFound()
		}
		return nil, apperrors.Storage(err, "failed to find customer")
	}
	return &c, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var c customer.Customer
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.CustomerNotFound()
		}
		return nil, apperrors.Storage(err, "failed to find customer")
	}
	return &c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, id string, upd customer.Update) (*customer.Customer, error) {
	oid, err := customerID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c customer.Customer
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.CustomerNotFound()
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.EmailExists()
		}
		return nil, apperrors.Storage(err, "failed to update customer")
	}
	return &c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, err := customerID(id)
	if err != nil {
		return err
	}

	var c customer.Customer
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperrors.CustomerNotFound()
		}
		return apperrors.Storage(err, "failed to delete customer")
	}
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, spec *listing.Spec) ([]*customer.Customer, int64, error) {
	filter := r.tr.Filter(spec)

	cursor, err := r.coll.Find(ctx, filter, r.tr.FindOptions(spec))
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to list customers")
	}
	defer cursor.Close(ctx)

	customers := []*customer.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, 0, apperrors.Storage(err, "failed to decode customers")
	}

	// The count runs against the same filter; minor skew with the window
	// is acceptable.
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Storage(err, "failed to count customers")
	}

	return customers, total, nil
}
