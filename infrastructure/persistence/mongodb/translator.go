package mongodb

import (
	"weblarek/domain/listing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// translator turns a listing.Spec into driver filter and find options.
// Fields named in objectIDFields hold ObjectID references; string values
// for them are decoded from hex. An undecodable value yields the zero
// ObjectID, which matches nothing, never an injected operator.
type translator struct {
	objectIDFields map[string]bool
}

func newTranslator(objectIDFields ...string) *translator {
	m := make(map[string]bool, len(objectIDFields))
	for _, f := range objectIDFields {
		m[f] = true
	}
	return &translator{objectIDFields: m}
}

// Filter builds the bson filter from the spec's clauses.
func (t *translator) Filter(spec *listing.Spec) bson.M {
	return t.translate(spec.Clauses)
}

// FindOptions builds sort, skip and limit from the spec's window.
func (t *translator) FindOptions(spec *listing.Spec) *options.FindOptions {
	direction := 1
	if spec.SortDesc {
		direction = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: spec.SortField, Value: direction}}).
		SetSkip(spec.Skip()).
		SetLimit(spec.Limit())
}

func (t *translator) translate(clauses []listing.Clause) bson.M {
	filter := bson.M{}
	for _, clause := range clauses {
		if len(clause.Or) > 0 {
			alternatives := make([]bson.M, 0, len(clause.Or))
			for _, alt := range clause.Or {
				alternatives = append(alternatives, t.translate([]listing.Clause{alt}))
			}
			filter["$or"] = alternatives
			continue
		}
		t.apply(filter, clause)
	}
	return filter
}

func (t *translator) apply(filter bson.M, clause listing.Clause) {
	switch clause.Op {
	case listing.OpEq:
		filter[clause.Field] = t.value(clause.Field, clause.Value)
	case listing.OpContains:
		// The pattern is escaped by the builder; it is a literal here.
		pattern, _ := clause.Value.(string)
		filter[clause.Field] = primitive.Regex{Pattern: pattern, Options: "i"}
	case listing.OpGte:
		t.applyRange(filter, clause.Field, "$gte", clause.Value)
	case listing.OpLte:
		t.applyRange(filter, clause.Field, "$lte", clause.Value)
	}
}

// applyRange merges both bounds of a range onto one field entry.
func (t *translator) applyRange(filter bson.M, field, op string, value any) {
	entry, ok := filter[field].(bson.M)
	if !ok {
		entry = bson.M{}
		filter[field] = entry
	}
	entry[op] = value
}

func (t *translator) value(field string, value any) any {
	if !t.objectIDFields[field] {
		return value
	}
	hexID, ok := value.(string)
	if !ok {
		return value
	}
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
