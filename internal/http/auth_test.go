package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"

	"lofireads/internal/http/handlers"
	"lofireads/internal/services"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func postForm(target, body string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// Seeded credentials must never hit the store in plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	users := stores.NewUserStore(kv)
	if err := users.SeedUsers(); err != nil {
		t.Fatal(err)
	}

	var raw string
	if err := kv.DB().Get(&raw, `SELECT value FROM kv WHERE key = ?`, storage.KeyUsers); err != nil {
		t.Fatalf("read users blob: %v", err)
	}
	if strings.Contains(raw, "Passw0rd!") {
		t.Fatal("stored directory contains a plaintext password")
	}
	if !strings.Contains(raw, "$2") {
		t.Fatal("stored directory carries no bcrypt hashes")
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	users := stores.NewUserStore(kv)
	if err := users.SeedUsers(); err != nil {
		t.Fatal(err)
	}
	authSvc := services.NewAuthService(users)
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	respForm, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(respForm, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	respBad, err := app.Test(postForm("/login", "csrf="+tok+"&email=maya@lofireads.test&password=wrongpass!", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respBad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: %d", respBad.StatusCode)
	}

	respGood, err := app.Test(postForm("/login", "csrf="+tok+"&email=maya@lofireads.test&password=Passw0rd!", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respGood.StatusCode != http.StatusFound {
		t.Fatalf("good creds: %d", respGood.StatusCode)
	}
	if extractCookie(respGood, "sid") == "" {
		t.Fatal("login issued no session cookie")
	}

	// two attempts spent; the third trips the throttle
	respThird, err := app.Test(postForm("/login", "csrf="+tok+"&email=maya@lofireads.test&password=wrongpass!", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respThird.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", respThird.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	users := stores.NewUserStore(kv)
	if err := users.SeedUsers(); err != nil {
		t.Fatal(err)
	}
	authH := &handlers.AuthHandler{Auth: services.NewAuthService(users)}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)

	respForm, err := app.Test(httptest.NewRequest("GET", "/register", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(respForm, "csrf_")
	csrfCookie := &http.Cookie{Name: "csrf_", Value: tok}

	// weak password rejected up front
	respWeak, err := app.Test(postForm("/register", "csrf="+tok+"&email=new@example.com&name=New&password=short", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respWeak.StatusCode != http.StatusBadRequest {
		t.Fatalf("weak password: %d", respWeak.StatusCode)
	}

	// seeded address, different case
	respDup, err := app.Test(postForm("/register", "csrf="+tok+"&email=MAYA@lofireads.test&name=Maya&password=Passw0rd!", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respDup.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: %d", respDup.StatusCode)
	}

	respNew, err := app.Test(postForm("/register", "csrf="+tok+"&email=new@example.com&name=New&password=Passw0rd!", csrfCookie))
	if err != nil {
		t.Fatal(err)
	}
	if respNew.StatusCode != http.StatusFound {
		t.Fatalf("fresh register: %d", respNew.StatusCode)
	}
}
