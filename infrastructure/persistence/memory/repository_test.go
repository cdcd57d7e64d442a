package memory

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"weblarek/domain/customer"
	"weblarek/domain/listing"
	"weblarek/domain/order"
	apperrors "weblarek/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCustomers(t *testing.T, repo *CustomerRepository, n int) []*customer.Customer {
	t.Helper()
	out := make([]*customer.Customer, 0, n)
	for i := 0; i < n; i++ {
		c := &customer.Customer{
			Name:  fmt.Sprintf("Customer %02d", i),
			Email: fmt.Sprintf("c%02d@example.com", i),
			Roles: []string{"customer"},
		}
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("seed customer %d: %v", i, err)
		}
		out = append(out, c)
	}
	return out
}

func TestCustomerCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo, 1)

	err := repo.Create(context.Background(), &customer.Customer{Name: "Dup", Email: "c00@example.com"})
	if !apperrors.Is(err, apperrors.CodeEmailExists) {
		t.Errorf("duplicate email error = %v, want EMAIL_EXISTS", err)
	}
}

func TestCustomerFindByIDValidation(t *testing.T) {
	repo := NewCustomerRepository()

	if _, err := repo.FindByID(context.Background(), "not-an-object-id"); !apperrors.Is(err, apperrors.CodeValidation) {
		t.Errorf("malformed id error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex()); !apperrors.Is(err, apperrors.CodeCustomerNotFound) {
		t.Errorf("missing id error = %v, want CUSTOMER_NOT_FOUND", err)
	}
}

func TestCustomerListPaginationWindow(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo, 25)

	spec, err := listing.Build(
		url.Values{"page": {"3"}, "sortField": {"name"}, "sortOrder": {"asc"}},
		listing.Viewer{Admin: true},
		listing.Options{SortFields: []string{"name"}},
	)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	items, total, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(items) != 5 {
		t.Fatalf("page 3 size = %d, want 5", len(items))
	}
	if items[0].Name != "Customer 20" {
		t.Errorf("first item on page 3 = %q, want Customer 20", items[0].Name)
	}
	if listing.TotalPages(total, spec.PageSize) != 3 {
		t.Errorf("total pages = %d, want 3", listing.TotalPages(total, spec.PageSize))
	}
}

func TestCustomerListSearch(t *testing.T) {
	repo := NewCustomerRepository()
	seedCustomers(t, repo, 5)
	special := &customer.Customer{Name: "Mr. Dot", Email: "dot.name@example.com"}
	if err := repo.Create(context.Background(), special); err != nil {
		t.Fatalf("seed: %v", err)
	}

	opts := listing.Options{SearchFields: []string{"name", "email"}}
	spec, err := listing.Build(url.Values{"search": {"Mr. Dot"}}, listing.Viewer{Admin: true}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	items, total, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Email != special.Email {
		t.Errorf("search result = %d items, want exactly the matching customer", len(items))
	}

	// The dot is literal: "Mr. Dot" must not match "MrX Dot".
	spec, _ = listing.Build(url.Values{"search": {"c0"}}, listing.Viewer{Admin: true}, opts)
	_, total, _ = repo.List(context.Background(), spec)
	if total != 5 {
		t.Errorf("substring search total = %d, want 5", total)
	}
}

func seedOrders(t *testing.T, repo *OrderRepository, owner primitive.ObjectID, n int, status order.Status) {
	t.Helper()
	for i := 0; i < n; i++ {
		number, _ := repo.NextOrderNumber(context.Background())
		o := &order.Order{
			OrderNumber: number,
			Status:      status,
			TotalAmount: float64(10 * (i + 1)),
			Products:    []order.Item{{ProductID: primitive.NewObjectID(), Title: fmt.Sprintf("Widget %d", i), Price: 10}},
			CustomerID:  owner,
		}
		if err := repo.Create(context.Background(), o); err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
}

func TestOrderListOwnerNarrowing(t *testing.T) {
	repo := NewOrderRepository()
	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()
	seedOrders(t, repo, mine, 3, order.StatusNew)
	seedOrders(t, repo, other, 4, order.StatusNew)

	opts := listing.Options{OwnerField: "customer", OwnerParam: "customer"}

	// Non-admin viewer sees only their own orders even when the request
	// tries to scope to someone else.
	params := url.Values{"customer": {other.Hex()}}
	spec, err := listing.Build(params, listing.Viewer{SubjectID: mine.Hex()}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	items, total, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 3 {
		t.Errorf("narrowed total = %d, want 3", total)
	}
	for _, o := range items {
		if o.CustomerID != mine {
			t.Errorf("order %d belongs to %s, leaked across owners", o.OrderNumber, o.CustomerID.Hex())
		}
	}

	// Admin sees everything unscoped.
	spec, _ = listing.Build(url.Values{}, listing.Viewer{SubjectID: mine.Hex(), Admin: true}, opts)
	_, total, _ = repo.List(context.Background(), spec)
	if total != 7 {
		t.Errorf("admin total = %d, want 7", total)
	}
}

func TestOrderListStatusAndSearch(t *testing.T) {
	repo := NewOrderRepository()
	owner := primitive.NewObjectID()
	seedOrders(t, repo, owner, 2, order.StatusNew)
	seedOrders(t, repo, owner, 3, order.StatusCompleted)

	opts := listing.Options{
		SearchFields:       []string{"products.title"},
		NumericSearchField: "orderNumber",
		EnumFilters: []listing.EnumFilter{
			{Param: "status", Field: "status", Allowed: order.Statuses()},
		},
	}

	spec, err := listing.Build(url.Values{"status": {"completed"}}, listing.Viewer{Admin: true}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	_, total, err := repo.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if total != 3 {
		t.Errorf("completed total = %d, want 3", total)
	}

	// Numeric search matches the order number exactly.
	spec, _ = listing.Build(url.Values{"search": {"4"}}, listing.Viewer{Admin: true}, opts)
	items, total, _ := repo.List(context.Background(), spec)
	if total != 1 || items[0].OrderNumber != 4 {
		t.Errorf("numeric search = %d items, want order 4 only", total)
	}

	// Text search runs over embedded product titles.
	spec, _ = listing.Build(url.Values{"search": {"Widget"}}, listing.Viewer{Admin: true}, opts)
	_, total, _ = repo.List(context.Background(), spec)
	if total != 5 {
		t.Errorf("title search total = %d, want 5", total)
	}
}

func TestOrderSequenceMonotonic(t *testing.T) {
	repo := NewOrderRepository()
	prev := int64(0)
	for i := 0; i < 5; i++ {
		n, err := repo.NextOrderNumber(context.Background())
		if err != nil {
			t.Fatalf("NextOrderNumber() error: %v", err)
		}
		if n <= prev {
			t.Fatalf("sequence not monotonic: %d after %d", n, prev)
		}
		prev = n
	}
}
