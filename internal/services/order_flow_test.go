package services_test

import (
	"math"
	"strings"
	"testing"

	"pawmart/internal/repos"
	"pawmart/internal/services"
)

func orderFixture(t *testing.T) (*services.CartService, *services.OrderService, *repos.ProductRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	carts := repos.NewCartRepo(db)
	prods := repos.NewProductRepo(db)
	orders := repos.NewOrderRepo(db)
	return services.NewCartService(carts, prods), services.NewOrderService(carts, prods, orders), prods
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCartAddAndView(t *testing.T) {
	cart, _, _ := orderFixture(t)
	sid := "sess-1"

	if err := cart.Add(sid, "prod-kibble", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "prod-leash", 1); err != nil {
		t.Fatal(err)
	}
	// adding again accumulates onto the same line
	if err := cart.Add(sid, "prod-kibble", 1); err != nil {
		t.Fatal(err)
	}

	view, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(view.Items))
	}
	want := 3*49.99 + 15.00
	if !near(view.Total, want) {
		t.Fatalf("total = %v, want %v", view.Total, want)
	}
}

func TestCartAddBeyondStock(t *testing.T) {
	cart, _, _ := orderFixture(t)
	sid := "sess-1"

	// scratcher stock is 12
	if err := cart.Add(sid, "prod-scratcher", 10); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "prod-scratcher", 5); err == nil {
		t.Fatal("accumulated qty past stock must be rejected")
	} else if !strings.Contains(err.Error(), "in stock") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	cart, _, _ := orderFixture(t)
	if err := cart.Add("sess-1", "prod-nope", 1); err != services.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCartSetQtyZeroRemovesLine(t *testing.T) {
	cart, _, _ := orderFixture(t)
	sid := "sess-1"
	if err := cart.Add(sid, "prod-leash", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.SetQty(sid, "prod-leash", 0); err != nil {
		t.Fatal(err)
	}
	view, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("line should be gone, got %d", len(view.Items))
	}
}

func TestPlaceOrder(t *testing.T) {
	cart, orders, prods := orderFixture(t)
	sid := "sess-1"

	if err := cart.Add(sid, "prod-kibble", 2); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(sid, "prod-leash", 3); err != nil {
		t.Fatal(err)
	}

	orderID, total, err := orders.Place(sid, services.Contact{
		Name: "Dana Reyes", Email: "dana@example.com", Address: "12 Main St",
	})
	if err != nil {
		t.Fatal(err)
	}
	if orderID == "" {
		t.Fatal("order must carry an id")
	}
	want := 2*49.99 + 3*15.00
	if !near(total, want) {
		t.Fatalf("total = %v, want %v", total, want)
	}

	// stock is decremented by exactly the ordered quantities
	p, err := prods.Get("prod-kibble")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 23 {
		t.Fatalf("kibble stock = %d, want 23", p.Stock)
	}
	p, err = prods.Get("prod-leash")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 37 {
		t.Fatalf("leash stock = %d, want 37", p.Stock)
	}

	// the cart is emptied once the order is written
	view, err := cart.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d lines", len(view.Items))
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	_, orders, _ := orderFixture(t)
	if _, _, err := orders.Place("sess-1", services.Contact{Name: "D", Email: "d@example.com"}); err == nil {
		t.Fatal("empty cart must not produce an order")
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	cart, orders, prods := orderFixture(t)
	sid := "sess-1"

	if err := cart.Add(sid, "prod-scratcher", 12); err != nil {
		t.Fatal(err)
	}
	// stock drains between add and checkout
	if err := prods.DecrementStock("prod-scratcher", 5); err != nil {
		t.Fatal(err)
	}
	if _, _, err := orders.Place(sid, services.Contact{Name: "D", Email: "d@example.com"}); err == nil {
		t.Fatal("checkout past available stock must fail")
	}
	// nothing was decremented by the failed checkout
	p, err := prods.Get("prod-scratcher")
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 7 {
		t.Fatalf("stock = %d, want 7", p.Stock)
	}
}
