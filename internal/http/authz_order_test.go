package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"lofireads/internal/domain"
	"lofireads/internal/http/handlers"
	"lofireads/internal/services"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

func newOrderApp(t *testing.T) (*fiber.App, *stores.OrderStore) {
	t.Helper()
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	users := stores.NewUserStore(kv)
	if err := users.SeedUsers(); err != nil {
		t.Fatal(err)
	}
	users.BindSession("sid-maya", "u-maya")
	users.BindSession("sid-iris", "u-iris")
	users.BindSession("sid-admin", "u-admin")
	authSvc := services.NewAuthService(users)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	deps := handlers.NewDeps(kv, authSvc)
	app.Get("/order/:id", handlers.RequireUser(authSvc), deps.OrderHandler.View)
	app.Post("/order/:id/cancel", handlers.RequireUser(authSvc), deps.OrderHandler.Cancel)

	// the handler's store and this one share the same backing kv
	return app, stores.NewOrderStore(kv)
}

func asSession(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func TestOrderViewOwnerOrAdminOnly(t *testing.T) {
	app, orders := newOrderApp(t)
	o := orders.Create(stores.CreateOrderInput{
		UserID: "u-maya",
		Items:  []domain.CartLine{{Book: domain.Book{ID: "1", Title: "Whispers in the Rain", Price: 24.99}, Quantity: 1}},
		ShippingAddress: domain.Address{Name: "Maya", ZipCode: "97201"},
		Payment:         domain.PaymentMethod{Type: "test"},
	})

	respOwner, err := app.Test(asSession(httptest.NewRequest("GET", "/order/"+o.ID, nil), "sid-maya"))
	if err != nil {
		t.Fatal(err)
	}
	if respOwner.StatusCode != http.StatusOK {
		t.Fatalf("owner: %d", respOwner.StatusCode)
	}
	if !strings.Contains(body(t, respOwner), o.ID) {
		t.Fatal("order page missing the order id")
	}

	// another user gets the same surface as a missing order
	respOther, err := app.Test(asSession(httptest.NewRequest("GET", "/order/"+o.ID, nil), "sid-iris"))
	if err != nil {
		t.Fatal(err)
	}
	if respOther.StatusCode != http.StatusNotFound {
		t.Fatalf("non-owner: %d", respOther.StatusCode)
	}

	respAdmin, err := app.Test(asSession(httptest.NewRequest("GET", "/order/"+o.ID, nil), "sid-admin"))
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusOK {
		t.Fatalf("admin: %d", respAdmin.StatusCode)
	}

	respGone, err := app.Test(asSession(httptest.NewRequest("GET", "/order/ORD-0-MISSING", nil), "sid-maya"))
	if err != nil {
		t.Fatal(err)
	}
	if respGone.StatusCode != http.StatusNotFound {
		t.Fatalf("missing order: %d", respGone.StatusCode)
	}
}

func TestOrderCancelRespectsTerminalStates(t *testing.T) {
	app, orders := newOrderApp(t)
	o := orders.Create(stores.CreateOrderInput{
		UserID:  "u-maya",
		Items:   []domain.CartLine{{Book: domain.Book{ID: "1", Price: 24.99}, Quantity: 1}},
		Payment: domain.PaymentMethod{Type: "test"},
	})

	// a stranger's cancel attempt looks like a missing order
	respOther, err := app.Test(asSession(httptest.NewRequest("POST", "/order/"+o.ID+"/cancel", nil), "sid-iris"))
	if err != nil {
		t.Fatal(err)
	}
	if respOther.StatusCode != http.StatusNotFound {
		t.Fatalf("non-owner cancel: %d", respOther.StatusCode)
	}

	respCancel, err := app.Test(asSession(httptest.NewRequest("POST", "/order/"+o.ID+"/cancel", nil), "sid-maya"))
	if err != nil {
		t.Fatal(err)
	}
	if respCancel.StatusCode != http.StatusFound {
		t.Fatalf("owner cancel: %d", respCancel.StatusCode)
	}

	// cancelled is terminal, a second cancel is refused
	respAgain, err := app.Test(asSession(httptest.NewRequest("POST", "/order/"+o.ID+"/cancel", nil), "sid-maya"))
	if err != nil {
		t.Fatal(err)
	}
	if respAgain.StatusCode != http.StatusBadRequest {
		t.Fatalf("cancel after terminal: %d", respAgain.StatusCode)
	}
}
