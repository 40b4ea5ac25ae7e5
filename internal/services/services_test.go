package services_test

import (
	"errors"
	"testing"

	"lofireads/internal/cart"
	"lofireads/internal/catalog"
	"lofireads/internal/domain"
	"lofireads/internal/services"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

// fixture wires the full service graph over an in-memory kv, the way main
// does at boot.
type fixture struct {
	carts  *cart.Manager
	auth   *services.AuthService
	cartS  *services.CartService
	wishS  *services.WishlistService
	orderS *services.OrderService
	orders *stores.OrderStore
	wish   *stores.WishlistStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	cat := catalog.New()
	carts := cart.NewManager()
	users := stores.NewUserStore(kv)
	wish := stores.NewWishlistStore(kv)
	orders := stores.NewOrderStore(kv)
	return &fixture{
		carts:  carts,
		auth:   services.NewAuthService(users),
		cartS:  services.NewCartService(carts, cat),
		wishS:  services.NewWishlistService(wish, cat, carts),
		orderS: services.NewOrderService(carts, orders),
		orders: orders,
		wish:   wish,
	}
}

func shipTo() domain.Address {
	return domain.Address{Name: "Maya Chen", Street: "12 Rainy Ln", City: "Portland", State: "OR", ZipCode: "97201", Country: "US"}
}

func TestCheckoutPersistsOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	if err := f.cartS.Add("sid-1", "1"); err != nil {
		t.Fatal(err)
	}
	if err := f.cartS.Add("sid-1", "1"); err != nil {
		t.Fatal(err)
	}
	if err := f.cartS.Add("sid-1", "3"); err != nil {
		t.Fatal(err)
	}

	o, err := f.orderS.Checkout("sid-1", "u1", shipTo(), nil, domain.PaymentMethod{Type: "card", Last4: "4242"})
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Items) != 2 {
		t.Fatalf("order lines: %d", len(o.Items))
	}
	if o.Items[0].Book.ID != "1" || o.Items[0].Quantity != 2 {
		t.Fatalf("first line %+v", o.Items[0])
	}

	persisted, err := f.orders.GetByID(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if persisted.UserID != "u1" {
		t.Fatalf("owner %q", persisted.UserID)
	}

	if v := f.cartS.View("sid-1"); v.TotalItems != 0 {
		t.Fatalf("cart not cleared: %d items", v.TotalItems)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.orderS.Checkout("sid-1", "u1", shipTo(), nil, domain.PaymentMethod{Type: "test"}); !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if len(f.orders.ListForUser("u1")) != 0 {
		t.Fatal("empty checkout produced an order")
	}
}

func TestCartAddRejectsUnknownBook(t *testing.T) {
	f := newFixture(t)
	if err := f.cartS.Add("sid-1", "404"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
	if err := f.wishS.Save("u1", "404"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("wishlist save of unknown book: %v", err)
	}
}

func TestMoveAllToCart(t *testing.T) {
	f := newFixture(t)
	if err := f.wishS.Save("u1", "2"); err != nil {
		t.Fatal(err)
	}
	if err := f.wishS.Save("u1", "4"); err != nil {
		t.Fatal(err)
	}
	// the cart already holds one copy of book 2
	if err := f.cartS.Add("sid-1", "2"); err != nil {
		t.Fatal(err)
	}

	moved := f.wishS.MoveAllToCart("u1", "sid-1")
	if len(moved) != 2 {
		t.Fatalf("moved %d books", len(moved))
	}
	if len(f.wishS.List("u1")) != 0 {
		t.Fatal("wishlist not cleared after move")
	}

	v := f.cartS.View("sid-1")
	if v.TotalItems != 3 {
		t.Fatalf("cart items after move: %d", v.TotalItems)
	}
	for _, l := range v.Lines {
		if l.Book.ID == "2" && l.Quantity != 2 {
			t.Fatalf("book 2 quantity %d", l.Quantity)
		}
	}
}

func TestAuthRoundTrip(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register("sid-1", "maya@example.com", "Passw0rd!", "Maya")
	if err != nil {
		t.Fatal(err)
	}

	// register logs the session in
	cur, err := f.auth.CurrentUser("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if cur.ID != u.ID {
		t.Fatalf("session user %q", cur.ID)
	}

	f.auth.Logout("sid-1")
	if _, err := f.auth.CurrentUser("sid-1"); !errors.Is(err, stores.ErrNotFound) {
		t.Fatalf("logout did not unbind: %v", err)
	}

	if _, err := f.auth.Login("sid-2", "maya@example.com", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	cur, err = f.auth.CurrentUser("sid-2")
	if err != nil {
		t.Fatal(err)
	}
	if cur.Email != "maya@example.com" {
		t.Fatalf("session user email %q", cur.Email)
	}
}
